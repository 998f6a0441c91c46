package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tronicjosh/emfcompliancev1/compliance"
	"github.com/tronicjosh/emfcompliancev1/config"
	"github.com/tronicjosh/emfcompliancev1/grid"
	"github.com/tronicjosh/emfcompliancev1/solver"
)

func sampleResults() *solver.Results {
	return &solver.Results{
		Config: grid.Config{XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZLevel: 1.5, Resolution: 1},
		Points: []compliance.PointResult{
			{X: 0, Y: 0, Z: 1.5, FieldValue: 1.2, Limit: 58, PercentageOfLimit: 2.1, Status: compliance.Compliant},
			{X: 1, Y: 0, Z: 1.5, FieldValue: 50, Limit: 58, PercentageOfLimit: 86.2, Status: compliance.Marginal},
			{X: 0, Y: 1, Z: 1.5, FieldValue: 60, Limit: 58, PercentageOfLimit: 103.4, Status: compliance.NonCompliant},
			{X: 1, Y: 1, Z: 1.5, FieldValue: 0.4, Limit: 58, PercentageOfLimit: 0.7, Status: compliance.Compliant},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteCSV(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5) // header + one row per point
	assert.Equal(t, "x,y,z,field_value_v_m,limit_v_m,percentage_of_limit,status", lines[0])
	assert.Contains(t, lines[3], "NON_COMPLIANT")
}

func TestWriteReport(t *testing.T) {
	cfg, err := config.Load(writeSimConfig(t))
	require.NoError(t, err)

	comp, err := compliance.New("ICNIRP_2020", compliance.GeneralPublic)
	require.NoError(t, err)
	results := sampleResults()
	summary := comp.GenerateSummary(results.Points)
	boundaries := map[string]float64{"default": 12.5}

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, cfg, summary, boundaries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rep map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &rep))
	for _, key := range []string{"metadata", "grid", "antennas", "summary", "compliance_boundaries"} {
		assert.Contains(t, rep, key)
	}

	var meta struct {
		SimulationName string `json:"simulation_name"`
		Standard       string `json:"standard"`
	}
	require.NoError(t, json.Unmarshal(rep["metadata"], &meta))
	assert.Equal(t, "ICNIRP_2020", meta.Standard)

	var gotBoundaries map[string]float64
	require.NoError(t, json.Unmarshal(rep["compliance_boundaries"], &gotBoundaries))
	assert.Equal(t, boundaries, gotBoundaries)

	var gotSummary compliance.Summary
	require.NoError(t, json.Unmarshal(rep["summary"], &gotSummary))
	assert.Equal(t, summary, gotSummary)
}

func writeSimConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Report Test\n"), 0644))
	return path
}

func TestWriteHeatmaps(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteHeatmaps(dir, sampleResults()))

	for _, name := range []string{"field_heatmap.png", "percentage_heatmap.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
