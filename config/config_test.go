package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
name: Rooftop Site Survey
grid:
  x_min: -60
  x_max: 60
  y_min: -40
  y_max: 40
  z_level: 1.7
  resolution: 2.5
compliance:
  standard: FCC
  category: occupational
antennas:
  - id: sector_a
    pattern_file: isotropic
    frequency_mhz: 2100
    power_eirp_watts: 250
    position: {x: 1, y: 2, z: 33}
    orientation: {azimuth_deg: 120, tilt_deg: -4}
  - id: sector_b
    frequency_mhz: 900
    power_eirp_watts: 80
`))
	require.NoError(t, err)

	assert.Equal(t, "Rooftop Site Survey", cfg.Name)
	assert.Equal(t, -60.0, cfg.Grid.XMin)
	assert.Equal(t, 2.5, cfg.Grid.Resolution)
	assert.Equal(t, "FCC", cfg.Compliance.Standard)
	assert.Equal(t, "occupational", cfg.Compliance.Category)

	require.Len(t, cfg.Antennas, 2)
	a := cfg.Antennas[0].AntennaConfig()
	assert.Equal(t, "sector_a", a.ID)
	assert.Equal(t, 2100.0, a.FrequencyMHz)
	assert.Equal(t, 250.0, a.EIRPWatts)
	assert.Equal(t, 33.0, a.Position.Z)
	assert.Equal(t, 120.0, a.AzimuthDeg)
	assert.Equal(t, -4.0, a.TiltDeg)

	// Missing position and orientation keys default per antenna.
	b := cfg.Antennas[1].AntennaConfig()
	assert.Equal(t, 900.0, b.FrequencyMHz)
	assert.Equal(t, 30.0, b.Position.Z)
	assert.Equal(t, 0.0, b.AzimuthDeg)

	require.NoError(t, Validate(cfg))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "name: Minimal\n"))
	require.NoError(t, err)

	assert.Equal(t, -100.0, cfg.Grid.XMin)
	assert.Equal(t, 100.0, cfg.Grid.XMax)
	assert.Equal(t, 1.5, cfg.Grid.ZLevel)
	assert.Equal(t, 1.0, cfg.Grid.Resolution)
	assert.Equal(t, "ICNIRP_2020", cfg.Compliance.Standard)
	assert.Equal(t, "general_public", cfg.Compliance.Category)

	// With no antennas a default isotropic one is added.
	require.Len(t, cfg.Antennas, 1)
	a := cfg.Antennas[0].AntennaConfig()
	assert.Equal(t, "default", a.ID)
	assert.Equal(t, "isotropic", a.PatternRef)
	assert.Equal(t, 1800.0, a.FrequencyMHz)
	assert.Equal(t, 100.0, a.EIRPWatts)
	assert.Equal(t, 30.0, a.Position.Z)
}

func TestLoadGeneratedIDs(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
antennas:
  - frequency_mhz: 900
  - frequency_mhz: 1800
`))
	require.NoError(t, err)
	require.Len(t, cfg.Antennas, 2)
	assert.Equal(t, "antenna_1", cfg.Antennas[0].ID)
	assert.Equal(t, "antenna_2", cfg.Antennas[1].ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/sim.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Simulation {
		cfg := Default()
		cfg.Antennas = append(cfg.Antennas, defaultAntenna())
		return cfg
	}

	require.NoError(t, Validate(base()))

	{ // Inverted grid bounds
		cfg := base()
		cfg.Grid.XMin, cfg.Grid.XMax = 10, -10
		assert.ErrorContains(t, Validate(cfg), "x_min")
	}
	{
		cfg := base()
		cfg.Grid.YMin, cfg.Grid.YMax = 5, 5
		assert.ErrorContains(t, Validate(cfg), "y_min")
	}
	{ // Non-positive resolution
		cfg := base()
		cfg.Grid.Resolution = 0
		assert.ErrorContains(t, Validate(cfg), "resolution")
	}
	{ // No antennas
		cfg := base()
		cfg.Antennas = nil
		assert.ErrorContains(t, Validate(cfg), "no antennas")
	}
	{ // Non-positive frequency
		cfg := base()
		f := 0.0
		cfg.Antennas[0].FrequencyMHz = &f
		assert.ErrorContains(t, Validate(cfg), "frequency")
	}
	{ // Negative EIRP
		cfg := base()
		p := -1.0
		cfg.Antennas[0].PowerEIRPWatts = &p
		assert.ErrorContains(t, Validate(cfg), "power")
	}
}
