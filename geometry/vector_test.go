package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -1, Z: 2}

	assert.Equal(t, Vec3{X: 5, Y: 1, Z: 5}, a.Add(b))
	assert.Equal(t, Vec3{X: -3, Y: 3, Z: 1}, a.Sub(b))
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Scale(2))
	assert.Equal(t, Vec3{X: -1, Y: -2, Z: -3}, a.Neg())
	assert.Equal(t, 8.0, a.Dot(b))
	assert.Equal(t, Vec3{X: 7, Y: 10, Z: -9}, a.Cross(b))
	assert.Equal(t, 14.0, a.Magnitude2())
	assert.InDelta(t, math.Sqrt(14), a.Magnitude(), 1.e-12)
}

func TestNormalized(t *testing.T) {
	v := Vec3{X: 3, Y: 0, Z: 4}
	n := v.Normalized()
	assert.InDelta(t, 1, n.Magnitude(), 1.e-12)
	assert.InDelta(t, 0.6, n.X, 1.e-12)
	assert.InDelta(t, 0.8, n.Z, 1.e-12)

	// Near-zero vectors normalize to zero instead of dividing by ~0.
	tiny := Vec3{X: 1.e-12, Y: 0, Z: 0}
	assert.Equal(t, Vec3{}, tiny.Normalized())
}

func TestSpherical(t *testing.T) {
	{ // Along +X: zero azimuth, zero elevation
		az, el := (Vec3{X: 1}).ToSpherical()
		assert.InDelta(t, 0, az, 1.e-12)
		assert.InDelta(t, 0, el, 1.e-12)
	}
	{ // Along +Y: 90 degrees azimuth
		az, el := (Vec3{Y: 1}).ToSpherical()
		assert.InDelta(t, math.Pi/2, az, 1.e-12)
		assert.InDelta(t, 0, el, 1.e-12)
	}
	{ // Straight up: 90 degrees elevation
		_, el := (Vec3{Z: 1}).ToSpherical()
		assert.InDelta(t, math.Pi/2, el, 1.e-12)
	}
	{ // Round trip through FromSpherical
		v := Vec3{X: 1, Y: 2, Z: -0.5}.Normalized()
		az, el := v.ToSpherical()
		back := FromSpherical(az, el)
		assert.InDelta(t, v.X, back.X, 1.e-12)
		assert.InDelta(t, v.Y, back.Y, 1.e-12)
		assert.InDelta(t, v.Z, back.Z, 1.e-12)
	}
}

func TestRotations(t *testing.T) {
	x := Vec3{X: 1}

	// Quarter turn about Z takes +X to +Y.
	r := x.RotateZ(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1.e-12)
	assert.InDelta(t, 1, r.Y, 1.e-12)

	// Quarter turn about Y takes +X to -Z.
	r = x.RotateY(math.Pi / 2)
	assert.InDelta(t, 0, r.X, 1.e-12)
	assert.InDelta(t, -1, r.Z, 1.e-12)

	// Quarter turn about X takes +Y to +Z.
	r = (Vec3{Y: 1}).RotateX(math.Pi / 2)
	assert.InDelta(t, 0, r.Y, 1.e-12)
	assert.InDelta(t, 1, r.Z, 1.e-12)

	// Rotations preserve magnitude.
	v := Vec3{X: 1, Y: 2, Z: 3}
	assert.InDelta(t, v.Magnitude(), v.RotateZ(0.7).Magnitude(), 1.e-12)
	assert.InDelta(t, v.Magnitude(), v.RotateY(0.7).Magnitude(), 1.e-12)
	assert.InDelta(t, v.Magnitude(), v.RotateX(0.7).Magnitude(), 1.e-12)
}
