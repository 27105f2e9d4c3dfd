package ddrive

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrLateralTwist is matched by every LateralTwistError.
var ErrLateralTwist = errors.New("twist has nonzero lateral component")

// LateralTwistError is returned when a differential drive is asked to move sideways.
type LateralTwistError struct {
	YDot float64
}

func (e *LateralTwistError) Error() string {
	return fmt.Sprintf("%s (ydot=%v)", ErrLateralTwist, e.YDot)
}

// Is reports whether target is ErrLateralTwist.
func (e *LateralTwistError) Is(target error) bool {
	return target == ErrLateralTwist
}

// NewLateralTwistError is used when a twist with a sideways component is commanded.
func NewLateralTwistError(yDot float64) error {
	return &LateralTwistError{YDot: yDot}
}

func newInvalidDimensionError(name string, value float64) error {
	return errors.Errorf("%s must be positive and finite, got %v", name, value)
}
