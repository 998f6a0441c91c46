// Package config loads and validates the YAML simulation descriptor.
package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/tronicjosh/emfcompliancev1/antenna"
	"github.com/tronicjosh/emfcompliancev1/geometry"
	"github.com/tronicjosh/emfcompliancev1/grid"
)

// Position is a 3D location in metres.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Orientation is an antenna pointing direction in degrees.
type Orientation struct {
	AzimuthDeg float64 `json:"azimuth_deg"`
	TiltDeg    float64 `json:"tilt_deg"`
}

// AntennaSpec is one antenna entry of the descriptor. Pointer fields
// distinguish absent keys from explicit zero values so per-antenna
// defaults can be applied.
type AntennaSpec struct {
	ID             string       `json:"id"`
	PatternFile    string       `json:"pattern_file"`
	FrequencyMHz   *float64     `json:"frequency_mhz"`
	PowerEIRPWatts *float64     `json:"power_eirp_watts"`
	Position       *Position    `json:"position"`
	Orientation    *Orientation `json:"orientation"`
}

// ComplianceSpec selects the regulatory standard and exposure category.
type ComplianceSpec struct {
	Standard string `json:"standard"`
	Category string `json:"category"`
}

// Simulation is the full simulation descriptor.
type Simulation struct {
	Name       string         `json:"name"`
	Grid       grid.Config    `json:"grid"`
	Compliance ComplianceSpec `json:"compliance"`
	Antennas   []AntennaSpec  `json:"antennas"`
}

// Default returns the descriptor defaults: a 200x200 m grid at 1.5 m
// height with 1 m resolution, ICNIRP 2020 general public limits.
func Default() Simulation {
	return Simulation{
		Name: "EMF Compliance Analysis",
		Grid: grid.Config{
			XMin:       -100,
			XMax:       100,
			YMin:       -100,
			YMax:       100,
			ZLevel:     1.5,
			Resolution: 1,
		},
		Compliance: ComplianceSpec{
			Standard: "ICNIRP_2020",
			Category: "general_public",
		},
	}
}

// Load reads a simulation descriptor from a YAML file. Missing keys keep
// their defaults; when no antennas are defined a single default
// isotropic antenna at (0,0,30) is added.
func Load(filename string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	for i := range cfg.Antennas {
		applyAntennaDefaults(&cfg.Antennas[i], i)
	}
	if len(cfg.Antennas) == 0 {
		cfg.Antennas = append(cfg.Antennas, defaultAntenna())
	}
	return cfg, nil
}

func applyAntennaDefaults(spec *AntennaSpec, index int) {
	if spec.ID == "" {
		spec.ID = fmt.Sprintf("antenna_%d", index+1)
	}
	if spec.FrequencyMHz == nil {
		f := 1800.0
		spec.FrequencyMHz = &f
	}
	if spec.PowerEIRPWatts == nil {
		p := 100.0
		spec.PowerEIRPWatts = &p
	}
	if spec.Position == nil {
		spec.Position = &Position{Z: 30}
	}
	if spec.Orientation == nil {
		spec.Orientation = &Orientation{}
	}
}

func defaultAntenna() AntennaSpec {
	spec := AntennaSpec{
		ID:          "default",
		PatternFile: "isotropic",
	}
	applyAntennaDefaults(&spec, 0)
	return spec
}

// AntennaConfig converts an antenna entry into the antenna package's
// configuration. Call only after Load has applied defaults.
func (s AntennaSpec) AntennaConfig() antenna.Config {
	return antenna.Config{
		ID:           s.ID,
		PatternRef:   s.PatternFile,
		FrequencyMHz: *s.FrequencyMHz,
		EIRPWatts:    *s.PowerEIRPWatts,
		Position: geometry.Vec3{
			X: s.Position.X,
			Y: s.Position.Y,
			Z: s.Position.Z,
		},
		AzimuthDeg: s.Orientation.AzimuthDeg,
		TiltDeg:    s.Orientation.TiltDeg,
	}
}

// Validate checks the descriptor before any solving starts. All
// violations are fatal configuration errors.
func Validate(cfg Simulation) error {
	if cfg.Grid.XMin >= cfg.Grid.XMax {
		return fmt.Errorf("invalid grid: x_min must be less than x_max")
	}
	if cfg.Grid.YMin >= cfg.Grid.YMax {
		return fmt.Errorf("invalid grid: y_min must be less than y_max")
	}
	if cfg.Grid.Resolution <= 0 {
		return fmt.Errorf("invalid grid: resolution must be positive")
	}
	if len(cfg.Antennas) == 0 {
		return fmt.Errorf("no antennas defined")
	}
	for _, ant := range cfg.Antennas {
		if ant.FrequencyMHz == nil || *ant.FrequencyMHz <= 0 {
			return fmt.Errorf("invalid antenna %s: frequency must be positive", ant.ID)
		}
		if ant.PowerEIRPWatts == nil || *ant.PowerEIRPWatts < 0 {
			return fmt.Errorf("invalid antenna %s: power must be non-negative", ant.ID)
		}
	}
	return nil
}
