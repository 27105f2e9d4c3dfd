package utils

import (
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// Float is the set of scalar types the kinematics packages are generic over.
type Float interface {
	constraints.Float
}

// AlmostEqual returns true if a and b are strictly closer than epsilon.
func AlmostEqual[T Float](a, b, epsilon T) bool {
	return T(math.Abs(float64(a-b))) < epsilon
}

// DegToRad converts degrees to radians.
func DegToRad[T Float](degrees T) T {
	return degrees * T(math.Pi/180)
}

// RadToDeg converts radians to degrees.
func RadToDeg[T Float](radians T) T {
	return radians * T(180/math.Pi)
}

// RPMToRadPerSec converts revolutions per minute to radians per second.
func RPMToRadPerSec[T Float](rpm T) T {
	return rpm * T(2*math.Pi/60)
}

// RadPerSecToRPM converts radians per second to revolutions per minute.
func RadPerSecToRPM[T Float](radPerSec T) T {
	return radPerSec * T(60/(2*math.Pi))
}

// NormalizeAngle wraps an angle in radians into (-pi, pi]. Angles within 1e-6 of -pi map to pi.
func NormalizeAngle[T Float](rad T) T {
	if AlmostEqual(float64(rad), -math.Pi, 1e-6) {
		return T(math.Pi)
	}
	r := float64(rad)
	return T(math.Atan2(math.Sin(r), math.Cos(r)))
}

// Square is x*x. math.Pow(x, 2) is slow, this is faster.
func Square[T Float](n T) T {
	return n * n
}

// Linspace returns n evenly spaced values over [start, stop], both ends included.
func Linspace[T Float](start, stop T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n == 1 {
		return []T{start}
	}
	step := (stop - start) / T(n-1)
	out := lo.Times(n, func(i int) T {
		return start + T(i)*step
	})
	// pin the last sample so rounding never overshoots stop
	out[n-1] = stop
	return out
}

// Arange returns values from start towards stop (exclusive) spaced by step.
// A zero step, or one pointing away from stop, yields an empty slice.
func Arange[T Float](start, stop, step T) []T {
	return lo.RangeWithSteps(start, stop, step)
}
