// Package pattern implements antenna radiation pattern models: an
// isotropic radiator, tabulated-cut MSI/PLN files and sparse CSV grids.
package pattern

import (
	"math"
	"path/filepath"
	"strings"
)

// Pattern is a gain model over direction. Azimuth is in degrees in
// [0,360), elevation in degrees in [-90,90] (positive up).
type Pattern interface {
	// GainDBi returns the absolute gain in dBi towards the given
	// direction.
	GainDBi(azimuthDeg, elevationDeg float64) float64
	// MaxGainDBi returns the peak gain of the pattern in dBi.
	MaxGainDBi() float64
}

// GainLinear converts the pattern gain towards a direction to linear
// scale.
func GainLinear(p Pattern, azimuthDeg, elevationDeg float64) float64 {
	return math.Pow(10, p.GainDBi(azimuthDeg, elevationDeg)/10)
}

// Isotropic radiates 0 dBi in every direction.
type Isotropic struct{}

func (Isotropic) GainDBi(azimuthDeg, elevationDeg float64) float64 { return 0 }

func (Isotropic) MaxGainDBi() float64 { return 0 }

// New loads the pattern referenced by ref. An empty string or the
// literal "isotropic" yields an Isotropic pattern; .msi and .pln files
// load as tabulated-cut patterns, .csv files as sparse grids. Any other
// extension is attempted with the MSI parser.
func New(ref string) (Pattern, error) {
	if ref == "" || ref == "isotropic" {
		return Isotropic{}, nil
	}
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".msi", ".pln":
		return LoadMSI(ref)
	case ".csv":
		return LoadCSV(ref)
	default:
		return LoadMSI(ref)
	}
}

// wrap360 normalizes an angle in degrees into [0,360).
func wrap360(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
