/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tronicjosh/emfcompliancev1/antenna"
	"github.com/tronicjosh/emfcompliancev1/compliance"
	"github.com/tronicjosh/emfcompliancev1/config"
	"github.com/tronicjosh/emfcompliancev1/grid"
	"github.com/tronicjosh/emfcompliancev1/output"
	"github.com/tronicjosh/emfcompliancev1/solver"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <config.yaml>",
	Short: "Run a full compliance analysis",
	Long: `
Loads a simulation descriptor, sweeps the configured grid, classifies
every point against the selected exposure limits, searches the
compliance boundary for every antenna and writes the result table,
report and optional heatmaps to the output directory.

Exit codes: 0 all points compliant, 1 non-compliant points found,
2 configuration or runtime error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputDir, _ := cmd.Flags().GetString("output")
		workers, _ := cmd.Flags().GetInt("workers")
		plots, _ := cmd.Flags().GetBool("plots")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}

		summary, err := runAnalysis(args[0], outputDir, workers, plots)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(2)
		}
		if !summary.OverallCompliant {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("output", "o", "output", "output directory")
	runCmd.Flags().IntP("workers", "w", 1, "worker goroutines for the grid sweep (1 = serial)")
	runCmd.Flags().Bool("plots", false, "write field and percentage heatmap PNGs")
	runCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}

// buildSolver validates the descriptor and constructs every antenna. A
// pattern load failure for any antenna aborts the run.
func buildSolver(cfg config.Simulation) (*solver.Solver, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	s := solver.New()
	for _, spec := range cfg.Antennas {
		log.Debugf("adding antenna %s at (%g, %g, %g)",
			spec.ID, spec.Position.X, spec.Position.Y, spec.Position.Z)
		ant, err := antenna.New(spec.AntennaConfig())
		if err != nil {
			return nil, err
		}
		s.AddAntenna(ant)
	}
	return s, nil
}

func runAnalysis(configPath, outputDir string, workers int, plots bool) (compliance.Summary, error) {
	var summary compliance.Summary

	log.Debugf("loading configuration from %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		return summary, err
	}

	comp, err := compliance.New(cfg.Compliance.Standard, compliance.ParseCategory(cfg.Compliance.Category))
	if err != nil {
		return summary, err
	}

	s, err := buildSolver(cfg)
	if err != nil {
		return summary, err
	}

	g := grid.New(cfg.Grid)
	log.Debugf("sweeping %d grid points (%dx%d) with %d workers",
		g.TotalPoints(), g.NumX(), g.NumY(), workers)

	bar := progressbar.Default(int64(g.NumY()), "Field sweep")
	s.OnRow = func(yi int) { bar.Add(1) }
	results := s.SolveParallel(g, comp, workers)

	summary = comp.GenerateSummary(results.Points)
	boundaries := s.FindAllComplianceBoundaries(comp)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return summary, fmt.Errorf("cannot create output directory %s: %w", outputDir, err)
	}
	if err := output.WriteCSV(filepath.Join(outputDir, "results.csv"), results); err != nil {
		return summary, err
	}
	if err := output.WriteReport(filepath.Join(outputDir, "report.json"), cfg, summary, boundaries); err != nil {
		return summary, err
	}
	if plots {
		if err := output.WriteHeatmaps(outputDir, results); err != nil {
			return summary, err
		}
	}

	printSummary(summary, boundaries)
	return summary, nil
}

func printSummary(summary compliance.Summary, boundaries map[string]float64) {
	fmt.Printf("\n=== EMF Compliance Analysis Results ===\n")
	fmt.Printf("Standard: %s (%s)\n", summary.Standard, summary.Category)
	fmt.Printf("Total points analyzed: %d\n", summary.TotalPoints)
	if summary.TotalPoints > 0 {
		fmt.Printf("Compliant: %d (%.1f%%)\n", summary.CompliantPoints,
			100*float64(summary.CompliantPoints)/float64(summary.TotalPoints))
	}
	fmt.Printf("Marginal (80-100%%): %d\n", summary.MarginalPoints)
	fmt.Printf("Non-compliant: %d\n", summary.NonCompliantPoints)
	fmt.Printf("Max field: %.4g V/m\n", summary.MaxFieldValue)
	fmt.Printf("Max %% of limit: %.4g%%\n", summary.MaxPercentageOfLimit)

	fmt.Printf("\nCompliance boundaries:\n")
	ids := make([]string, 0, len(boundaries))
	for id := range boundaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s: %.1f m\n", id, boundaries[id])
	}

	verdict := "COMPLIANT"
	if !summary.OverallCompliant {
		verdict = "NON-COMPLIANT"
	}
	fmt.Printf("\nOverall: %s\n", verdict)
}
