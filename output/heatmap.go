package output

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tronicjosh/emfcompliancev1/compliance"
	"github.com/tronicjosh/emfcompliancev1/grid"
	"github.com/tronicjosh/emfcompliancev1/solver"
)

// resultsGrid adapts a result set to plotter.GridXYZ, selecting one
// scalar per point.
type resultsGrid struct {
	results *solver.Results
	value   func(compliance.PointResult) float64
	nx, ny  int
}

func newResultsGrid(results *solver.Results, value func(compliance.PointResult) float64) resultsGrid {
	g := grid.New(results.Config)
	return resultsGrid{results: results, value: value, nx: g.NumX(), ny: g.NumY()}
}

func (g resultsGrid) Dims() (c, r int) { return g.nx, g.ny }

func (g resultsGrid) X(c int) float64 {
	return g.results.Config.XMin + float64(c)*g.results.Config.Resolution
}

func (g resultsGrid) Y(r int) float64 {
	return g.results.Config.YMin + float64(r)*g.results.Config.Resolution
}

func (g resultsGrid) Z(c, r int) float64 {
	return g.value(g.results.Points[r*g.nx+c])
}

func writeHeatmap(filename, title, unit string, data resultsGrid) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", title, unit)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	h := plotter.NewHeatMap(data, moreland.SmoothBlueRed().Palette(255))
	p.Add(h)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, filename); err != nil {
		return fmt.Errorf("saving heatmap %s: %w", filename, err)
	}
	return nil
}

// WriteHeatmaps renders the field strength and percentage-of-limit
// surfaces over the grid as PNG files in dir.
func WriteHeatmaps(dir string, results *solver.Results) error {
	fieldFile := filepath.Join(dir, "field_heatmap.png")
	field := newResultsGrid(results, func(p compliance.PointResult) float64 { return p.FieldValue })
	if err := writeHeatmap(fieldFile, "E-Field Strength", "V/m", field); err != nil {
		return err
	}

	pctFile := filepath.Join(dir, "percentage_heatmap.png")
	pct := newResultsGrid(results, func(p compliance.PointResult) float64 { return p.PercentageOfLimit })
	return writeHeatmap(pctFile, "Percentage of Limit", "%", pct)
}
