package main

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/diffdrive/kinematics/ddrive"
	"go.viam.com/diffdrive/logging"
	"go.viam.com/diffdrive/spatialmath"
	"go.viam.com/diffdrive/utils"
)

const (
	// Flags.
	flagConfig          = "config"
	flagDebug           = "debug"
	flagLogLevel        = "log-level"
	flagWheelRadius     = "wheel-radius"
	flagWheelSeparation = "wheel-separation"
	flagThetaDot        = "thetadot"
	flagXDot            = "xdot"
	flagYDot            = "ydot"
	flagRPM             = "rpm"
	flagLeft            = "left"
	flagRight           = "right"
	flagDt              = "dt"
	flagLinear          = "linear"
	flagAngular         = "angular"
)

type runner struct {
	out    io.Writer
	logger logging.Logger
}

// newApp builds the command. Results are printed to out; logs and usage errors go to errOut.
func newApp(out, errOut io.Writer) *cli.App {
	r := &runner{out: out}

	return &cli.App{
		Name:      "ddrive",
		Usage:     "differential drive kinematics calculator",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load drive configuration from `FILE`",
			},
			&cli.Float64Flag{
				Name:  flagWheelRadius,
				Usage: "wheel radius, ignored when --config is set",
				Value: 1,
			},
			&cli.Float64Flag{
				Name:  flagWheelSeparation,
				Usage: "distance between the wheels, ignored when --config is set",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "minimum log level (debug, info, warn, error)",
			},
		},
		Before: r.setupLogger,
		Commands: []*cli.Command{
			{
				Name:  "speeds",
				Usage: "compute wheel speeds for a body twist",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagThetaDot, Usage: "angular velocity in rad/s"},
					&cli.Float64Flag{Name: flagXDot, Usage: "forward velocity"},
					&cli.Float64Flag{Name: flagYDot, Usage: "lateral velocity, must be zero"},
					&cli.BoolFlag{Name: flagRPM, Usage: "print speeds in RPM instead of rad/s"},
				},
				Action: r.speedsAction,
			},
			{
				Name:  "velocity",
				Usage: "compute wheel RPMs for a base velocity command; requires lengths in millimeters",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{Name: flagLinear, Usage: "linear velocity x,y,z in mm/s (+Y forward)"},
					&cli.Float64SliceFlag{Name: flagAngular, Usage: "angular velocity x,y,z in deg/s"},
				},
				Action: r.velocityAction,
			},
			{
				Name:  "twist",
				Usage: "compute the body twist produced by wheel speeds",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: flagLeft, Usage: "left wheel speed in rad/s"},
					&cli.Float64Flag{Name: flagRight, Usage: "right wheel speed in rad/s"},
				},
				Action: r.twistAction,
			},
			{
				Name:  "odometry",
				Usage: "integrate a sequence of wheel angle readings into poses",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{Name: flagLeft, Usage: "left wheel angles in radians", Required: true},
					&cli.Float64SliceFlag{Name: flagRight, Usage: "right wheel angles in radians", Required: true},
					&cli.Float64Flag{Name: flagDt, Usage: "seconds between readings", Value: 1},
				},
				Action: r.odometryAction,
			},
		},
	}
}

func (r *runner) setupLogger(c *cli.Context) error {
	level := logging.WARN
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	r.logger = logging.New("ddrive", level, logging.NewWriterAppender(c.App.ErrWriter))
	if lvl := c.String(flagLogLevel); lvl != "" {
		parsed, err := logging.LevelFromString(lvl)
		if err != nil {
			return err
		}
		r.logger.SetLevel(parsed)
	}
	logging.ReplaceGlobal(r.logger)
	return nil
}

func (r *runner) newDrive(c *cli.Context) (*ddrive.DiffDrive[float64], error) {
	logger := r.logger.Sublogger("model")
	path := c.String(flagConfig)
	if path == "" {
		return ddrive.New(c.Float64(flagWheelRadius), c.Float64(flagWheelSeparation), logger)
	}

	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config file")
	}
	var attributes map[string]interface{}
	if err := json5.Unmarshal(data, &attributes); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	cfg, err := ddrive.DecodeConfig(attributes)
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("loaded drive config", "path", path, "config", cfg)
	return ddrive.NewFromConfig(cfg, logger)
}

func (r *runner) speedsAction(c *cli.Context) error {
	dd, err := r.newDrive(c)
	if err != nil {
		return err
	}
	speeds, err := dd.SpeedsFromTwist(spatialmath.NewTwist2D(c.Float64(flagThetaDot), c.Float64(flagXDot), c.Float64(flagYDot)))
	if err != nil {
		return err
	}
	if c.Bool(flagRPM) {
		speeds = speeds.ToRPM()
	}
	printf(r.out, "%v", speeds)
	return nil
}

func (r *runner) velocityAction(c *cli.Context) error {
	linear, err := vectorFlag(c, flagLinear)
	if err != nil {
		return err
	}
	angular, err := vectorFlag(c, flagAngular)
	if err != nil {
		return err
	}
	dd, err := r.newDrive(c)
	if err != nil {
		return err
	}
	rpm, err := dd.RPMFromBaseVelocity(linear, angular)
	if err != nil {
		return err
	}
	printf(r.out, "%v", rpm)
	return nil
}

func (r *runner) twistAction(c *cli.Context) error {
	dd, err := r.newDrive(c)
	if err != nil {
		return err
	}
	printf(r.out, "%v", dd.TwistFromSpeeds(ddrive.NewWheelState(c.Float64(flagLeft), c.Float64(flagRight))))
	return nil
}

func (r *runner) odometryAction(c *cli.Context) error {
	lefts := c.Float64Slice(flagLeft)
	rights := c.Float64Slice(flagRight)
	if len(lefts) != len(rights) {
		return errors.Errorf("got %d left readings and %d right readings", len(lefts), len(rights))
	}
	dd, err := r.newDrive(c)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"#", "Left", "Right", "X", "Y", "Heading (deg)"})
	t.AppendRow(table.Row{"0", "0", "0", "0", "0", "0"})
	for i := range lefts {
		pose, err := dd.ForwardKinematicsDt(ddrive.NewWheelState(lefts[i], rights[i]), c.Float64(flagDt))
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.3f", lefts[i]),
			fmt.Sprintf("%.3f", rights[i]),
			fmt.Sprintf("%.3f", pose.X),
			fmt.Sprintf("%.3f", pose.Y),
			fmt.Sprintf("%.2f", utils.RadToDeg(pose.Theta)),
		})
	}
	t.Render()
	return nil
}

func vectorFlag(c *cli.Context, name string) (r3.Vector, error) {
	vals := c.Float64Slice(name)
	switch len(vals) {
	case 0:
		return r3.Vector{}, nil
	case 3:
		return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	default:
		return r3.Vector{}, errors.Errorf("--%s takes three components, got %d", name, len(vals))
	}
}

func printf(w io.Writer, format string, args ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", args...)
}
