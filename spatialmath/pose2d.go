package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/diffdrive/utils"
)

// Pose2D is a position and heading in the world frame. Theta is in radians.
type Pose2D[T utils.Float] struct {
	Theta T `json:"theta"`
	X     T `json:"x"`
	Y     T `json:"y"`
}

// NewPose2D constructs a pose at (x, y) with heading theta.
func NewPose2D[T utils.Float](x, y, theta T) Pose2D[T] {
	return Pose2D[T]{Theta: theta, X: x, Y: y}
}

// Point returns the position of the pose as a 3D point on the z=0 plane.
func (p Pose2D[T]) Point() r3.Vector {
	return r3.Vector{X: float64(p.X), Y: float64(p.Y)}
}

// Position returns the position of the pose.
func (p Pose2D[T]) Position() Vector2D[T] {
	return Vector2D[T]{X: p.X, Y: p.Y}
}

func (p Pose2D[T]) String() string {
	return fmt.Sprintf("deg:%v x:%v y:%v", p.Theta, p.X, p.Y)
}

// Twist2D is an instantaneous body frame velocity: an angular rate and a linear rate.
type Twist2D[T utils.Float] struct {
	ThetaDot T `json:"thetadot"`
	XDot     T `json:"xdot"`
	YDot     T `json:"ydot"`
}

// NewTwist2D constructs a twist.
func NewTwist2D[T utils.Float](thetaDot, xDot, yDot T) Twist2D[T] {
	return Twist2D[T]{ThetaDot: thetaDot, XDot: xDot, YDot: yDot}
}

// Scale returns the displacement twist produced by holding tw for dt time units.
func (tw Twist2D[T]) Scale(dt T) Twist2D[T] {
	return Twist2D[T]{ThetaDot: tw.ThetaDot * dt, XDot: tw.XDot * dt, YDot: tw.YDot * dt}
}

func (tw Twist2D[T]) String() string {
	return fmt.Sprintf("[%v, %v, %v]", tw.ThetaDot, tw.XDot, tw.YDot)
}
