// Package solver superposes per-antenna field contributions over a grid
// and searches for compliance boundary distances.
package solver

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tronicjosh/emfcompliancev1/antenna"
	"github.com/tronicjosh/emfcompliancev1/compliance"
	"github.com/tronicjosh/emfcompliancev1/geometry"
	"github.com/tronicjosh/emfcompliancev1/grid"
)

const (
	// eta0 is the impedance of free space in ohms, relating power
	// density to field strength: E = sqrt(eta0 * S).
	eta0 = 377.0

	degToRad = math.Pi / 180

	// boundaryEvalHeight is the fixed height at which the boundary
	// search samples the field, independent of the grid.
	boundaryEvalHeight = 1.5

	// Boundary search bracket and termination width, metres.
	boundaryMinDist   = 1.0
	boundaryMaxDist   = 1000.0
	boundaryPrecision = 0.1
)

// ErrAntennaNotFound reports a boundary search for an unknown antenna id.
var ErrAntennaNotFound = errors.New("antenna not found")

// Results is the ordered outcome of a grid sweep, one PointResult per
// grid point in row-major order.
type Results struct {
	Config grid.Config
	Points []compliance.PointResult
}

// Solver owns the antenna collection. Antennas keep their insertion
// order; limit lookups during a sweep use the first antenna's frequency.
type Solver struct {
	antennas []*antenna.Antenna

	// OnRow, when set, is called after each completed grid row with
	// the row index. Used for progress reporting; it must be safe to
	// call from worker goroutines when solving in parallel.
	OnRow func(yi int)
}

// New returns an empty solver.
func New() *Solver {
	return &Solver{}
}

// AddAntenna appends an antenna to the collection.
func (s *Solver) AddAntenna(a *antenna.Antenna) {
	s.antennas = append(s.antennas, a)
}

// Antennas returns the antenna collection in insertion order.
func (s *Solver) Antennas() []*antenna.Antenna { return s.antennas }

// TotalPowerDensity sums the power density contribution of every antenna
// at the point. Summation is incoherent (power, not amplitude), the
// conservative regulatory combining rule.
func (s *Solver) TotalPowerDensity(point geometry.Vec3) float64 {
	total := 0.0
	for _, a := range s.antennas {
		total += a.PowerDensity(point)
	}
	return total
}

// TotalEField returns the combined field strength at the point in V/m,
// derived from the total power density rather than a vector sum of
// individual fields.
func (s *Solver) TotalEField(point geometry.Vec3) float64 {
	return math.Sqrt(eta0 * s.TotalPowerDensity(point))
}

// limitFrequency returns the frequency used for limit lookups during a
// sweep: the first antenna's. A single-frequency simplification that
// holds even when antennas at different frequencies are present.
func (s *Solver) limitFrequency() float64 {
	if len(s.antennas) == 0 {
		return 0
	}
	return s.antennas[0].FrequencyMHz
}

func (s *Solver) evaluatePoint(point geometry.Vec3, limit float64) compliance.PointResult {
	field := s.TotalEField(point)
	pct := compliance.Percentage(field, limit)
	return compliance.PointResult{
		X:                 point.X,
		Y:                 point.Y,
		Z:                 point.Z,
		FieldValue:        field,
		Limit:             limit,
		PercentageOfLimit: pct,
		Status:            compliance.Classify(pct),
	}
}

// Solve sweeps the grid in row-major order, computing the cumulative
// field, the applicable limit and the compliance status at every point.
func (s *Solver) Solve(g *grid.Grid, comp *compliance.Compliance) *Results {
	results := &Results{
		Config: g.Config(),
		Points: make([]compliance.PointResult, 0, g.TotalPoints()),
	}
	limit := comp.EFieldLimit(s.limitFrequency())

	for yi := 0; yi < g.NumY(); yi++ {
		for xi := 0; xi < g.NumX(); xi++ {
			results.Points = append(results.Points, s.evaluatePoint(g.Point(xi, yi), limit))
		}
		if s.OnRow != nil {
			s.OnRow(yi)
		}
	}
	return results
}

// SolveParallel distributes grid rows over the given number of workers.
// Each point reads only the immutable antenna collection and writes only
// its own preassigned result slot, so no locking is needed and the
// result sequence comes out in canonical row-major order. workers <= 1
// falls back to the serial sweep.
func (s *Solver) SolveParallel(g *grid.Grid, comp *compliance.Compliance, workers int) *Results {
	if workers <= 1 {
		return s.Solve(g, comp)
	}

	results := &Results{
		Config: g.Config(),
		Points: make([]compliance.PointResult, g.TotalPoints()),
	}
	limit := comp.EFieldLimit(s.limitFrequency())
	numX := g.NumX()

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for yi := range rows {
				base := yi * numX
				for xi := 0; xi < numX; xi++ {
					results.Points[base+xi] = s.evaluatePoint(g.Point(xi, yi), limit)
				}
				if s.OnRow != nil {
					s.OnRow(yi)
				}
			}
		}()
	}
	for yi := 0; yi < g.NumY(); yi++ {
		rows <- yi
	}
	close(rows)
	wg.Wait()

	return results
}

// findAntenna scans the collection for an id. Linear scan is fine at
// the expected scale of tens of antennas.
func (s *Solver) findAntenna(id string) *antenna.Antenna {
	for _, a := range s.antennas {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// FindComplianceBoundary bisects for the distance from the named antenna
// at which the cumulative field drops below the applicable limit. The
// ray leaves the antenna position in the horizontal plane at the given
// azimuth, measured from the antenna's own boresight azimuth rather than
// a fixed compass direction, and is sampled at a fixed evaluation
// height. Returns 1 m when already compliant there, and 1000 m when the
// field still exceeds the limit at the end of the search range (a
// saturated result, not a true boundary).
func (s *Solver) FindComplianceBoundary(antennaID string, comp *compliance.Compliance, directionAzimuthDeg float64) (float64, error) {
	target := s.findAntenna(antennaID)
	if target == nil {
		return 0, fmt.Errorf("%w: %s", ErrAntennaNotFound, antennaID)
	}

	limit := comp.EFieldLimit(target.FrequencyMHz)

	azRad := (target.AzimuthDeg + directionAzimuthDeg) * degToRad
	direction := geometry.Vec3{X: math.Cos(azRad), Y: math.Sin(azRad)}

	testPoint := func(dist float64) geometry.Vec3 {
		p := target.Position.Add(direction.Scale(dist))
		p.Z = boundaryEvalHeight
		return p
	}

	minDist, maxDist := boundaryMinDist, boundaryMaxDist

	if s.TotalEField(testPoint(minDist)) <= limit {
		return minDist, nil
	}
	if s.TotalEField(testPoint(maxDist)) > limit {
		return maxDist, nil
	}

	for maxDist-minDist > boundaryPrecision {
		mid := (minDist + maxDist) / 2
		if s.TotalEField(testPoint(mid)) > limit {
			minDist = mid
		} else {
			maxDist = mid
		}
	}
	return (minDist + maxDist) / 2, nil
}

// FindAllComplianceBoundaries runs the boundary search for every antenna
// along its boresight azimuth and returns an id to distance mapping in
// metres.
func (s *Solver) FindAllComplianceBoundaries(comp *compliance.Compliance) map[string]float64 {
	boundaries := make(map[string]float64, len(s.antennas))
	for _, a := range s.antennas {
		// The id is known to exist, the lookup cannot fail.
		boundary, _ := s.FindComplianceBoundary(a.ID, comp, 0)
		boundaries[a.ID] = boundary
	}
	return boundaries
}
