package antenna

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tronicjosh/emfcompliancev1/geometry"
)

func isotropicAntenna(t *testing.T, eirp float64, pos geometry.Vec3) *Antenna {
	t.Helper()
	a, err := New(Config{
		ID:           "test",
		PatternRef:   "isotropic",
		FrequencyMHz: 1800,
		EIRPWatts:    eirp,
		Position:     pos,
	})
	require.NoError(t, err)
	return a
}

func TestNewFailsOnBadPattern(t *testing.T) {
	_, err := New(Config{ID: "bad", PatternRef: "/nonexistent/p.msi"})
	assert.Error(t, err)
}

func TestIsotropicPowerDensity(t *testing.T) {
	const eirp = 100.0
	a := isotropicAntenna(t, eirp, geometry.Vec3{})

	// S = EIRP / (4 pi r^2) in every direction.
	r := 10.0
	want := eirp / (4 * math.Pi * r * r)
	directions := []geometry.Vec3{
		{X: r}, {Y: r}, {Z: r}, {X: -r},
		{X: r / math.Sqrt2, Y: r / math.Sqrt2},
		{X: r / math.Sqrt2, Z: -r / math.Sqrt2},
	}
	for _, p := range directions {
		assert.InDelta(t, want, a.PowerDensity(p), 1.e-12)
	}
}

func TestEField(t *testing.T) {
	a := isotropicAntenna(t, 100, geometry.Vec3{})

	// E = sqrt(30 EIRP G) / r.
	assert.InDelta(t, math.Sqrt(3000)/10, a.EField(geometry.Vec3{X: 10}), 1.e-12)

	// Distances below 0.1 m are floored to avoid the singularity.
	atFloor := a.EField(geometry.Vec3{X: 0.1})
	assert.Equal(t, atFloor, a.EField(geometry.Vec3{X: 0.01}))
	assert.Equal(t, atFloor, a.EField(geometry.Vec3{}))
}

func TestAnglesTo(t *testing.T) {
	{ // Unrotated antenna: boresight along world +X.
		a := isotropicAntenna(t, 100, geometry.Vec3{})
		az, el := a.AnglesTo(geometry.Vec3{X: 10})
		assert.InDelta(t, 0, az, 1.e-9)
		assert.InDelta(t, 0, el, 1.e-9)

		// A point behind and above.
		az, el = a.AnglesTo(geometry.Vec3{X: -10, Z: 10})
		assert.InDelta(t, 180, az, 1.e-9)
		assert.InDelta(t, 45, el, 1.e-9)
	}
	{ // Azimuth rotation: an antenna turned to +Y sees (0,10,0) on boresight.
		a, err := New(Config{PatternRef: "isotropic", AzimuthDeg: 90})
		require.NoError(t, err)
		az, el := a.AnglesTo(geometry.Vec3{Y: 10})
		assert.InDelta(t, 0, az, 1.e-9)
		assert.InDelta(t, 0, el, 1.e-9)

		// Azimuth normalizes into [0,360).
		az, _ = a.AnglesTo(geometry.Vec3{X: 10})
		assert.InDelta(t, 270, az, 1.e-9)
	}
	{ // Tilt rotation about the lateral axis.
		a, err := New(Config{PatternRef: "isotropic", TiltDeg: 45})
		require.NoError(t, err)
		s := math.Sqrt2 / 2
		az, el := a.AnglesTo(geometry.Vec3{X: s, Z: -s})
		assert.InDelta(t, 0, az, 1.e-9)
		assert.InDelta(t, 0, el, 1.e-9)
	}
	{ // Position offset translates before rotating.
		a := isotropicAntenna(t, 100, geometry.Vec3{X: 5, Y: 5, Z: 30})
		az, el := a.AnglesTo(geometry.Vec3{X: 15, Y: 5, Z: 30})
		assert.InDelta(t, 0, az, 1.e-9)
		assert.InDelta(t, 0, el, 1.e-9)
	}
}

func TestGainTowards(t *testing.T) {
	a := isotropicAntenna(t, 100, geometry.Vec3{})
	assert.Equal(t, 1.0, a.GainTowards(geometry.Vec3{X: 3, Y: -2, Z: 1}))
}
