package spatialmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"go.viam.com/diffdrive/utils"
)

// zeroRotationEpsilon is the angular rate below which a twist is integrated as a pure translation.
const zeroRotationEpsilon = 1e-9

// Transform2D is a rigid transform of the plane, a member of SE(2). Applied to a point it rotates
// by the rotation angle and then translates. The rotation is never wrapped, so composing transforms
// accumulates angle.
type Transform2D[T utils.Float] struct {
	translation Vector2D[T]
	rotation    T
}

// NewTransform2D constructs a transform from a translation and a rotation in radians.
func NewTransform2D[T utils.Float](translation Vector2D[T], rotation T) Transform2D[T] {
	return Transform2D[T]{translation: translation, rotation: rotation}
}

// IdentityTransform2D returns the transform that does nothing.
func IdentityTransform2D[T utils.Float]() Transform2D[T] {
	return Transform2D[T]{}
}

// Transform2DFromPose returns the transform from the world frame to a body at pose p.
func Transform2DFromPose[T utils.Float](p Pose2D[T]) Transform2D[T] {
	return Transform2D[T]{translation: p.Position(), rotation: p.Theta}
}

// Rotation returns the rotation angle in radians.
func (t Transform2D[T]) Rotation() T {
	return t.rotation
}

// Translation returns the translation component.
func (t Transform2D[T]) Translation() Vector2D[T] {
	return t.translation
}

// Compose returns t * other: the transform that applies other and then t.
// Composition is associative but not commutative.
func (t Transform2D[T]) Compose(other Transform2D[T]) Transform2D[T] {
	return Transform2D[T]{
		translation: t.translation.Add(other.translation.rotate(t.rotation)),
		rotation:    t.rotation + other.rotation,
	}
}

// Inverse returns the transform u such that t.Compose(u) is the identity.
func (t Transform2D[T]) Inverse() Transform2D[T] {
	return Transform2D[T]{
		translation: t.translation.rotate(-t.rotation).Mul(-1),
		rotation:    -t.rotation,
	}
}

// Apply transforms the point v.
func (t Transform2D[T]) Apply(v Vector2D[T]) Vector2D[T] {
	return t.translation.Add(v.rotate(t.rotation))
}

// IntegrateTwist returns the displacement reached by following tw for one time unit, expressed
// relative to the frame the twist is measured in. The receiver only fixes the scalar type.
func (t Transform2D[T]) IntegrateTwist(tw Twist2D[T]) Transform2D[T] {
	return IntegrateTwist(tw)
}

// IntegrateTwist computes the exponential map of tw: the rigid displacement produced by holding
// the body twist constant over a unit time step.
func IntegrateTwist[T utils.Float](tw Twist2D[T]) Transform2D[T] {
	theta := float64(tw.ThetaDot)
	if math.Abs(theta) < zeroRotationEpsilon {
		return Transform2D[T]{translation: Vector2D[T]{X: tw.XDot, Y: tw.YDot}}
	}

	vx, vy := float64(tw.XDot), float64(tw.YDot)
	s, c := math.Sincos(theta)
	return Transform2D[T]{
		translation: Vector2D[T]{
			X: T((vx*s + vy*(c-1)) / theta),
			Y: T((vy*s + vx*(1-c)) / theta),
		},
		rotation: tw.ThetaDot,
	}
}

// ToPose returns the pose of a body whose frame is t relative to the world.
func (t Transform2D[T]) ToPose() Pose2D[T] {
	return Pose2D[T]{Theta: t.rotation, X: t.translation.X, Y: t.translation.Y}
}

// Matrix returns the 3x3 homogeneous matrix of t.
func (t Transform2D[T]) Matrix() *mat.Dense {
	s, c := math.Sincos(float64(t.rotation))
	return mat.NewDense(3, 3, []float64{
		c, -s, float64(t.translation.X),
		s, c, float64(t.translation.Y),
		0, 0, 1,
	})
}

func (t Transform2D[T]) String() string {
	return fmt.Sprintf("rad:%v translation:%v", t.rotation, t.translation)
}
