package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/diffdrive/utils"
)

func randomTransform(rnd *rand.Rand) Transform2D[float64] {
	return NewTransform2D(
		NewVector2D(rnd.Float64()*20-10, rnd.Float64()*20-10),
		rnd.Float64()*4*math.Pi-2*math.Pi,
	)
}

func transformsAlmostEqual(t *testing.T, a, b Transform2D[float64], epsilon float64) {
	t.Helper()
	test.That(t, a.Rotation(), test.ShouldAlmostEqual, b.Rotation(), epsilon)
	test.That(t, a.Translation().X, test.ShouldAlmostEqual, b.Translation().X, epsilon)
	test.That(t, a.Translation().Y, test.ShouldAlmostEqual, b.Translation().Y, epsilon)
}

func TestTransform2DNew(t *testing.T) {
	tf := NewTransform2D(NewVector2D(1.0, 2.0), utils.DegToRad(90.0))
	test.That(t, tf.Rotation(), test.ShouldAlmostEqual, math.Pi/2, 1e-6)
	test.That(t, tf.Translation().X, test.ShouldAlmostEqual, 1, 1e-6)
	test.That(t, tf.Translation().Y, test.ShouldAlmostEqual, 2, 1e-6)

	id := IdentityTransform2D[float64]()
	test.That(t, id.Rotation(), test.ShouldEqual, 0.0)
	test.That(t, id.Translation(), test.ShouldResemble, Vector2D[float64]{})
}

func TestTransform2DCompose(t *testing.T) {
	t.Run("translations add", func(t *testing.T) {
		tf1 := NewTransform2D(NewVector2D(5.0, 3.0), 0)
		tf2 := NewTransform2D(NewVector2D(2.0, 7.0), 0)
		tf3 := tf1.Compose(tf2)
		test.That(t, tf3.Rotation(), test.ShouldAlmostEqual, 0, 1e-4)
		test.That(t, tf3.Translation().X, test.ShouldAlmostEqual, 7, 1e-4)
		test.That(t, tf3.Translation().Y, test.ShouldAlmostEqual, 10, 1e-4)
	})

	t.Run("rotation applies to the right operand", func(t *testing.T) {
		rot := NewTransform2D(Vector2D[float64]{}, math.Pi/2)
		shift := NewTransform2D(NewVector2D(1.0, 0.0), 0)

		a := rot.Compose(shift)
		test.That(t, a.Translation().X, test.ShouldAlmostEqual, 0, 1e-9)
		test.That(t, a.Translation().Y, test.ShouldAlmostEqual, 1, 1e-9)

		b := shift.Compose(rot)
		test.That(t, b.Translation().X, test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, b.Translation().Y, test.ShouldAlmostEqual, 0, 1e-9)
		test.That(t, a.Rotation(), test.ShouldEqual, b.Rotation())
	})

	t.Run("rotation is not wrapped", func(t *testing.T) {
		tf := NewTransform2D(Vector2D[float64]{}, 3*math.Pi/2)
		test.That(t, tf.Compose(tf).Rotation(), test.ShouldAlmostEqual, 3*math.Pi)
	})

	t.Run("associative", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(42))
		for i := 0; i < 100; i++ {
			t1, t2, t3 := randomTransform(rnd), randomTransform(rnd), randomTransform(rnd)
			transformsAlmostEqual(t, t1.Compose(t2).Compose(t3), t1.Compose(t2.Compose(t3)), 1e-6)
		}
	})

	t.Run("agrees with homogeneous matrices", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(3))
		for i := 0; i < 25; i++ {
			t1, t2 := randomTransform(rnd), randomTransform(rnd)
			var prod mat.Dense
			prod.Mul(t1.Matrix(), t2.Matrix())
			test.That(t, mat.EqualApprox(&prod, t1.Compose(t2).Matrix(), 1e-9), test.ShouldBeTrue)
		}
	})
}

func TestTransform2DInverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		tf := randomTransform(rnd)
		transformsAlmostEqual(t, tf.Compose(tf.Inverse()), IdentityTransform2D[float64](), 1e-9)
		transformsAlmostEqual(t, tf.Inverse().Compose(tf), IdentityTransform2D[float64](), 1e-9)

		p := NewVector2D(rnd.Float64(), rnd.Float64())
		back := tf.Inverse().Apply(tf.Apply(p))
		test.That(t, back.X, test.ShouldAlmostEqual, p.X, 1e-9)
		test.That(t, back.Y, test.ShouldAlmostEqual, p.Y, 1e-9)
	}
}

func TestTransform2DApply(t *testing.T) {
	tf := NewTransform2D(NewVector2D(1.0, 1.0), math.Pi/2)
	p := tf.Apply(NewVector2D(2.0, 0.0))
	test.That(t, p.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 3, 1e-9)
}

func TestIntegrateTwist(t *testing.T) {
	identity := NewTransform2D(NewVector2D(0.0, 0.0), 0)

	t.Run("pure translation", func(t *testing.T) {
		tf := identity.IntegrateTwist(NewTwist2D(0.0, 1.0, 0.0))
		test.That(t, tf.Translation().X, test.ShouldAlmostEqual, 1, 1e-6)
		test.That(t, tf.Translation().Y, test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, tf.Rotation(), test.ShouldAlmostEqual, 0, 1e-6)
	})

	t.Run("pure rotation", func(t *testing.T) {
		tf := identity.IntegrateTwist(NewTwist2D(math.Pi, 0.0, 0.0))
		test.That(t, tf.Translation().X, test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, tf.Translation().Y, test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, tf.Rotation(), test.ShouldAlmostEqual, math.Pi, 1e-6)
	})

	t.Run("full revolution returns to start", func(t *testing.T) {
		tf := identity.IntegrateTwist(NewTwist2D(2*math.Pi, math.Pi, math.Pi))
		test.That(t, tf.Translation().X, test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, tf.Translation().Y, test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, tf.Rotation(), test.ShouldAlmostEqual, 2*math.Pi, 1e-6)
	})

	t.Run("quarter turn arc", func(t *testing.T) {
		// driving forward while turning left a quarter circle of radius 2
		tf := IntegrateTwist(NewTwist2D(math.Pi/2, math.Pi, 0.0))
		test.That(t, tf.Translation().X, test.ShouldAlmostEqual, 2, 1e-9)
		test.That(t, tf.Translation().Y, test.ShouldAlmostEqual, 2, 1e-9)
		test.That(t, tf.Rotation(), test.ShouldAlmostEqual, math.Pi/2, 1e-9)
	})

	t.Run("continuous near zero rotation", func(t *testing.T) {
		straight := IntegrateTwist(NewTwist2D(0.0, 1.0, 0.5))
		nearly := IntegrateTwist(NewTwist2D(1e-7, 1.0, 0.5))
		transformsAlmostEqual(t, straight, nearly, 1e-6)
	})

	t.Run("splitting the step composes", func(t *testing.T) {
		tw := NewTwist2D(0.8, 1.3, -0.4)
		half := IntegrateTwist(tw.Scale(0.5))
		transformsAlmostEqual(t, half.Compose(half), IntegrateTwist(tw), 1e-9)
	})

	t.Run("float32", func(t *testing.T) {
		tf := IntegrateTwist(NewTwist2D[float32](math.Pi, 0, 0))
		test.That(t, float64(tf.Rotation()), test.ShouldAlmostEqual, math.Pi, 1e-6)
		test.That(t, float64(tf.Translation().Magnitude()), test.ShouldAlmostEqual, 0, 1e-6)
	})
}

func TestTransform2DPose(t *testing.T) {
	p := NewPose2D(1.0, -2.0, math.Pi/3)
	tf := Transform2DFromPose(p)
	test.That(t, tf.Rotation(), test.ShouldEqual, p.Theta)
	test.That(t, tf.Translation(), test.ShouldResemble, NewVector2D(1.0, -2.0))
	test.That(t, tf.ToPose(), test.ShouldResemble, p)
	test.That(t, tf.String(), test.ShouldEqual, "rad:1.0471975511965976 translation:[1, -2]")
}

func TestTransform2DMatchesHomogeneousMatrices(t *testing.T) {
	toMgl := func(tf Transform2D[float64]) mgl64.Mat3 {
		return mgl64.Translate2D(tf.Translation().X, tf.Translation().Y).Mul3(mgl64.HomogRotate2D(tf.Rotation()))
	}

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		a := randomTransform(rnd)
		b := randomTransform(rnd)
		expected := toMgl(a).Mul3(toMgl(b))
		actual := a.Compose(b).Matrix()
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				test.That(t, actual.At(row, col), test.ShouldAlmostEqual, expected.At(row, col), 1e-9)
			}
		}

		p := NewVector2D(rnd.NormFloat64(), rnd.NormFloat64())
		hp := toMgl(a).Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
		applied := a.Apply(p)
		test.That(t, applied.X, test.ShouldAlmostEqual, hp.X(), 1e-9)
		test.That(t, applied.Y, test.ShouldAlmostEqual, hp.Y(), 1e-9)
	}
}
