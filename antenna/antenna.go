// Package antenna models a single transmitter: position, orientation,
// frequency, EIRP and an owned radiation pattern.
package antenna

import (
	"fmt"
	"math"

	"github.com/tronicjosh/emfcompliancev1/geometry"
	"github.com/tronicjosh/emfcompliancev1/pattern"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	// minDistance floors the propagation distance to avoid the
	// far-field singularity at the antenna location.
	minDistance = 0.1
)

// Config describes one antenna as read from the simulation descriptor.
type Config struct {
	ID           string
	PatternRef   string // pattern file path, empty or "isotropic" for isotropic
	FrequencyMHz float64
	EIRPWatts    float64
	Position     geometry.Vec3
	AzimuthDeg   float64
	TiltDeg      float64
}

// Antenna is immutable once constructed. Boresight is local +X after the
// orientation transform; azimuth 0 points along world +X.
type Antenna struct {
	ID           string
	FrequencyMHz float64
	EIRPWatts    float64
	Position     geometry.Vec3
	AzimuthDeg   float64
	TiltDeg      float64

	pattern pattern.Pattern
}

// New builds an antenna from its configuration, loading the radiation
// pattern. A pattern load failure aborts construction; no partially
// constructed antenna is ever returned.
func New(cfg Config) (*Antenna, error) {
	p, err := pattern.New(cfg.PatternRef)
	if err != nil {
		return nil, fmt.Errorf("antenna %s: %w", cfg.ID, err)
	}
	return &Antenna{
		ID:           cfg.ID,
		FrequencyMHz: cfg.FrequencyMHz,
		EIRPWatts:    cfg.EIRPWatts,
		Position:     cfg.Position,
		AzimuthDeg:   cfg.AzimuthDeg,
		TiltDeg:      cfg.TiltDeg,
		pattern:      p,
	}, nil
}

// Pattern returns the owned radiation pattern.
func (a *Antenna) Pattern() pattern.Pattern { return a.pattern }

// toLocal transforms a world point into the antenna's local frame:
// translate by -position, undo the azimuth rotation about the vertical
// axis, then undo the tilt about the local lateral axis. The boresight
// ends up on local +X.
func (a *Antenna) toLocal(point geometry.Vec3) geometry.Vec3 {
	return point.Sub(a.Position).
		RotateZ(-a.AzimuthDeg * degToRad).
		RotateY(-a.TiltDeg * degToRad)
}

// AnglesTo returns the local azimuth (degrees, [0,360)) and elevation
// (degrees) of the given point as seen by the antenna.
func (a *Antenna) AnglesTo(point geometry.Vec3) (azimuthDeg, elevationDeg float64) {
	azRad, elRad := a.toLocal(point).ToSpherical()
	azimuthDeg = azRad * radToDeg
	elevationDeg = elRad * radToDeg
	for azimuthDeg < 0 {
		azimuthDeg += 360
	}
	for azimuthDeg >= 360 {
		azimuthDeg -= 360
	}
	return
}

// GainTowards returns the linear pattern gain in the direction of the
// point.
func (a *Antenna) GainTowards(point geometry.Vec3) float64 {
	az, el := a.AnglesTo(point)
	return pattern.GainLinear(a.pattern, az, el)
}

// distanceTo returns the propagation distance with the near-field floor
// applied.
func (a *Antenna) distanceTo(point geometry.Vec3) float64 {
	d := point.Sub(a.Position).Magnitude()
	if d < minDistance {
		d = minDistance
	}
	return d
}

// EField returns the far-field electric field strength at the point in
// V/m: E = sqrt(30 * EIRP * G) / r.
func (a *Antenna) EField(point geometry.Vec3) float64 {
	d := a.distanceTo(point)
	return math.Sqrt(30*a.EIRPWatts*a.GainTowards(point)) / d
}

// PowerDensity returns the far-field power density at the point in
// W/m^2: S = EIRP * G / (4 pi r^2).
func (a *Antenna) PowerDensity(point geometry.Vec3) float64 {
	d := a.distanceTo(point)
	return a.EIRPWatts * a.GainTowards(point) / (4 * math.Pi * d * d)
}
