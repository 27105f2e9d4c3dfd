package ddrive

import (
	"github.com/golang/geo/r3"

	"go.viam.com/diffdrive/spatialmath"
	"go.viam.com/diffdrive/utils"
)

// TwistFromBaseVelocity converts a base velocity command, linear in mm/s with +Y forward and +X to
// the right and angular in deg/s about +Z, into a body twist in mm/s and rad/s with +X forward and
// +Y to the left.
func TwistFromBaseVelocity(linear, angular r3.Vector) spatialmath.Twist2D[float64] {
	return spatialmath.Twist2D[float64]{
		ThetaDot: utils.DegToRad(angular.Z),
		XDot:     linear.Y,
		YDot:     -linear.X,
	}
}

// RPMFromBaseVelocity returns the wheel RPMs needed for a base velocity command. The model's
// lengths must be in millimeters.
func (dd *DiffDrive[T]) RPMFromBaseVelocity(linear, angular r3.Vector) (WheelState[T], error) {
	tw := TwistFromBaseVelocity(linear, angular)
	speeds, err := dd.SpeedsFromTwist(spatialmath.NewTwist2D(T(tw.ThetaDot), T(tw.XDot), T(tw.YDot)))
	if err != nil {
		return WheelState[T]{}, err
	}
	return speeds.ToRPM(), nil
}
