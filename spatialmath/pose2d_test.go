package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
)

func TestPose2DNew(t *testing.T) {
	p := NewPose2D(2.0, 3.0, 90.0)
	test.That(t, p.X, test.ShouldEqual, 2.0)
	test.That(t, p.Y, test.ShouldEqual, 3.0)
	test.That(t, p.Theta, test.ShouldEqual, 90.0)
	test.That(t, p.String(), test.ShouldEqual, "deg:90 x:2 y:3")
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{X: 2, Y: 3})
	test.That(t, p.Position(), test.ShouldResemble, NewVector2D(2.0, 3.0))
}

func TestTwist2D(t *testing.T) {
	tw := NewTwist2D(0.5, 1.0, -2.0)
	test.That(t, tw.String(), test.ShouldEqual, "[0.5, 1, -2]")
	test.That(t, tw.Scale(2), test.ShouldResemble, NewTwist2D(1.0, 2.0, -4.0))
}

func TestPose2DThroughTransform(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)
	for _, p := range []Pose2D[float64]{
		NewPose2D(0.0, 0.0, 0.0),
		NewPose2D(1.0, -2.0, math.Pi/3),
		NewPose2D(-4.5, 0.25, -3*math.Pi),
	} {
		tf := Transform2DFromPose(p)
		test.That(t, cmp.Diff(p, tf.ToPose(), approx), test.ShouldBeEmpty)
		test.That(t, cmp.Diff(NewPose2D(0.0, 0.0, 0.0), tf.Compose(tf.Inverse()).ToPose(), approx), test.ShouldBeEmpty)
	}
}
