// Package output serializes solver results: the point-result CSV table,
// the JSON summary report and heatmap renderings of the grid.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"

	"github.com/tronicjosh/emfcompliancev1/compliance"
	"github.com/tronicjosh/emfcompliancev1/config"
	"github.com/tronicjosh/emfcompliancev1/solver"
)

type resultRow struct {
	X                 float64 `csv:"x"`
	Y                 float64 `csv:"y"`
	Z                 float64 `csv:"z"`
	FieldValue        float64 `csv:"field_value_v_m"`
	Limit             float64 `csv:"limit_v_m"`
	PercentageOfLimit float64 `csv:"percentage_of_limit"`
	Status            string  `csv:"status"`
}

// WriteCSV writes one row per grid point in canonical row-major order.
func WriteCSV(filename string, results *solver.Results) error {
	rows := make([]resultRow, len(results.Points))
	for i, p := range results.Points {
		rows[i] = resultRow{
			X:                 p.X,
			Y:                 p.Y,
			Z:                 p.Z,
			FieldValue:        p.FieldValue,
			Limit:             p.Limit,
			PercentageOfLimit: p.PercentageOfLimit,
			Status:            p.Status.String(),
		}
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding results CSV: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("cannot write output file %s: %w", filename, err)
	}
	return nil
}

type reportMetadata struct {
	SimulationName string `json:"simulation_name"`
	Standard       string `json:"standard"`
	Category       string `json:"category"`
}

type reportBounds struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

type reportGrid struct {
	Bounds      reportBounds `json:"bounds"`
	ZLevel      float64      `json:"z_level"`
	Resolution  float64      `json:"resolution"`
	TotalPoints int          `json:"total_points"`
}

type reportAntenna struct {
	ID             string             `json:"id"`
	FrequencyMHz   float64            `json:"frequency_mhz"`
	PowerEIRPWatts float64            `json:"power_eirp_watts"`
	Position       config.Position    `json:"position"`
	Orientation    config.Orientation `json:"orientation"`
}

type report struct {
	Metadata             reportMetadata     `json:"metadata"`
	Grid                 reportGrid         `json:"grid"`
	Antennas             []reportAntenna    `json:"antennas"`
	Summary              compliance.Summary `json:"summary"`
	ComplianceBoundaries map[string]float64 `json:"compliance_boundaries"`
}

// WriteReport writes the JSON analysis report: run metadata, grid and
// antenna configuration, the compliance summary and the per-antenna
// boundary distances.
func WriteReport(filename string, cfg config.Simulation, summary compliance.Summary,
	boundaries map[string]float64) error {

	rep := report{
		Metadata: reportMetadata{
			SimulationName: cfg.Name,
			Standard:       summary.Standard,
			Category:       summary.Category,
		},
		Grid: reportGrid{
			Bounds: reportBounds{
				XMin: cfg.Grid.XMin,
				XMax: cfg.Grid.XMax,
				YMin: cfg.Grid.YMin,
				YMax: cfg.Grid.YMax,
			},
			ZLevel:      cfg.Grid.ZLevel,
			Resolution:  cfg.Grid.Resolution,
			TotalPoints: summary.TotalPoints,
		},
		Summary:              summary,
		ComplianceBoundaries: boundaries,
	}
	for _, ant := range cfg.Antennas {
		rep.Antennas = append(rep.Antennas, reportAntenna{
			ID:             ant.ID,
			FrequencyMHz:   *ant.FrequencyMHz,
			PowerEIRPWatts: *ant.PowerEIRPWatts,
			Position:       *ant.Position,
			Orientation:    *ant.Orientation,
		})
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("cannot write report file %s: %w", filename, err)
	}
	return nil
}
