// Package spatialmath defines planar spatial primitives: vectors, poses, twists and SE(2) transforms.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/diffdrive/utils"
)

// ErrZeroMagnitudeVector is returned when an operation needs a direction from a vector with no length.
var ErrZeroMagnitudeVector = errors.New("vector has zero magnitude")

// Vector2D is a vector (or point) on the plane.
type Vector2D[T utils.Float] struct {
	X T `json:"x"`
	Y T `json:"y"`
}

// NewVector2D constructs a Vector2D from its components.
func NewVector2D[T utils.Float](x, y T) Vector2D[T] {
	return Vector2D[T]{X: x, Y: y}
}

// NewVector2DFromPolar constructs a Vector2D of length r pointing at angle phi (radians) from the x axis.
func NewVector2DFromPolar[T utils.Float](r, phi T) Vector2D[T] {
	return Vector2D[T]{
		X: r * T(math.Cos(float64(phi))),
		Y: r * T(math.Sin(float64(phi))),
	}
}

// Vector2DFromR2 converts a golang/geo point.
func Vector2DFromR2[T utils.Float](p r2.Point) Vector2D[T] {
	return Vector2D[T]{X: T(p.X), Y: T(p.Y)}
}

// R2 converts the vector to a golang/geo point.
func (v Vector2D[T]) R2() r2.Point {
	return r2.Point{X: float64(v.X), Y: float64(v.Y)}
}

// Add returns v + other.
func (v Vector2D[T]) Add(other Vector2D[T]) Vector2D[T] {
	return Vector2D[T]{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D[T]) Sub(other Vector2D[T]) Vector2D[T] {
	return Vector2D[T]{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul scales v by s.
func (v Vector2D[T]) Mul(s T) Vector2D[T] {
	return Vector2D[T]{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and other.
func (v Vector2D[T]) Dot(other Vector2D[T]) T {
	return v.X*other.X + v.Y*other.Y
}

// Magnitude returns the L2 norm of v.
func (v Vector2D[T]) Magnitude() T {
	return T(math.Sqrt(float64(utils.Square(v.X) + utils.Square(v.Y))))
}

// Distance returns the euclidean distance between v and other treated as points.
func (v Vector2D[T]) Distance(other Vector2D[T]) T {
	return other.Sub(v).Magnitude()
}

// Angle returns the unsigned angle between v and other, in [0, pi].
// It returns ErrZeroMagnitudeVector if either vector has no length.
func (v Vector2D[T]) Angle(other Vector2D[T]) (T, error) {
	denom := float64(v.Magnitude()) * float64(other.Magnitude())
	if denom == 0 {
		return 0, ErrZeroMagnitudeVector
	}
	cos := float64(v.Dot(other)) / denom
	// rounding can push |cos| slightly past 1 for parallel vectors
	cos = math.Max(-1, math.Min(1, cos))
	return T(math.Acos(cos)), nil
}

// Normalize returns the unit vector pointing along v.
// If either component is exactly zero the zero vector is returned, so (0, 5) normalizes to (0, 0).
// Existing callers rely on this.
func (v Vector2D[T]) Normalize() Vector2D[T] {
	if v.X == 0 || v.Y == 0 {
		return Vector2D[T]{}
	}
	mag := v.Magnitude()
	return Vector2D[T]{X: v.X / mag, Y: v.Y / mag}
}

// rotate returns v rotated counter-clockwise by theta radians.
func (v Vector2D[T]) rotate(theta T) Vector2D[T] {
	s, c := math.Sincos(float64(theta))
	x, y := float64(v.X), float64(v.Y)
	return Vector2D[T]{X: T(x*c - y*s), Y: T(x*s + y*c)}
}

func (v Vector2D[T]) String() string {
	return fmt.Sprintf("[%v, %v]", v.X, v.Y)
}
