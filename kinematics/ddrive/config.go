package ddrive

import (
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/diffdrive/logging"
)

// Config is how you configure a differential drive. Lengths are in millimeters. Exactly one of
// wheel_radius_mm and wheel_circumference_mm must be set.
type Config struct {
	WidthMM              float64 `json:"width_mm"`
	WheelRadiusMM        float64 `json:"wheel_radius_mm,omitempty"`
	WheelCircumferenceMM float64 `json:"wheel_circumference_mm,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var err error
	if cfg.WidthMM == 0 {
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "width_mm"))
	} else if !validDimension(cfg.WidthMM) {
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			newInvalidDimensionError("width_mm", cfg.WidthMM)))
	}

	switch {
	case cfg.WheelRadiusMM == 0 && cfg.WheelCircumferenceMM == 0:
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "wheel_radius_mm"))
	case cfg.WheelRadiusMM != 0 && cfg.WheelCircumferenceMM != 0:
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			errors.New("only one of wheel_radius_mm and wheel_circumference_mm may be set")))
	case cfg.WheelRadiusMM != 0 && !validDimension(cfg.WheelRadiusMM):
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			newInvalidDimensionError("wheel_radius_mm", cfg.WheelRadiusMM)))
	case cfg.WheelCircumferenceMM != 0 && !validDimension(cfg.WheelCircumferenceMM):
		err = multierr.Append(err, goutils.NewConfigValidationError(path,
			newInvalidDimensionError("wheel_circumference_mm", cfg.WheelCircumferenceMM)))
	}
	return err
}

// WheelRadius returns the configured wheel radius in millimeters.
func (cfg *Config) WheelRadius() float64 {
	if cfg.WheelRadiusMM != 0 {
		return cfg.WheelRadiusMM
	}
	return cfg.WheelCircumferenceMM / (2 * math.Pi)
}

// DecodeConfig converts a loosely typed attribute map (e.g. parsed JSON) into a Config.
func DecodeConfig(attributes map[string]interface{}) (*Config, error) {
	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &conf,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "error decoding differential drive attributes")
	}
	return &conf, nil
}

// NewFromConfig validates cfg and builds a millimeter based DiffDrive from it.
func NewFromConfig(cfg *Config, logger logging.Logger) (*DiffDrive[float64], error) {
	if err := cfg.Validate("ddrive"); err != nil {
		return nil, err
	}
	return New(cfg.WheelRadius(), cfg.WidthMM, logger)
}
