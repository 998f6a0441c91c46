// Package grid enumerates sample points over a rectangular region at a
// fixed height.
package grid

import (
	"math"

	"github.com/tronicjosh/emfcompliancev1/geometry"
)

// Config describes the rectangular calculation region.
type Config struct {
	XMin       float64 `json:"x_min"`
	XMax       float64 `json:"x_max"`
	YMin       float64 `json:"y_min"`
	YMax       float64 `json:"y_max"`
	ZLevel     float64 `json:"z_level"`    // height of the calculation plane, m
	Resolution float64 `json:"resolution"` // grid spacing, m
}

// Grid enumerates the points of a configured region in row-major order:
// outer loop over the Y index, inner over the X index. Both boundary
// coordinates are included, so each axis has ceil((max-min)/res)+1
// points.
type Grid struct {
	config Config
	numX   int
	numY   int
}

// New builds a grid from its configuration.
func New(config Config) *Grid {
	return &Grid{
		config: config,
		numX:   int(math.Ceil((config.XMax-config.XMin)/config.Resolution)) + 1,
		numY:   int(math.Ceil((config.YMax-config.YMin)/config.Resolution)) + 1,
	}
}

// Config returns the originating configuration.
func (g *Grid) Config() Config { return g.config }

// NumX returns the point count along the X axis.
func (g *Grid) NumX() int { return g.numX }

// NumY returns the point count along the Y axis.
func (g *Grid) NumY() int { return g.numY }

// TotalPoints returns the total number of grid points.
func (g *Grid) TotalPoints() int { return g.numX * g.numY }

// Point returns the coordinates for a pair of axis indices.
func (g *Grid) Point(xi, yi int) geometry.Vec3 {
	return geometry.Vec3{
		X: g.config.XMin + float64(xi)*g.config.Resolution,
		Y: g.config.YMin + float64(yi)*g.config.Resolution,
		Z: g.config.ZLevel,
	}
}

// ForEachPoint calls fn for every grid point in row-major order.
func (g *Grid) ForEachPoint(fn func(xi, yi int, point geometry.Vec3)) {
	for yi := 0; yi < g.numY; yi++ {
		for xi := 0; xi < g.numX; xi++ {
			fn(xi, yi, g.Point(xi, yi))
		}
	}
}

// Points returns all grid points in row-major order.
func (g *Grid) Points() []geometry.Vec3 {
	points := make([]geometry.Vec3, 0, g.TotalPoints())
	g.ForEachPoint(func(xi, yi int, p geometry.Vec3) {
		points = append(points, p)
	})
	return points
}
