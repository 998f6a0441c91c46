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
	"sort"

	"github.com/spf13/cobra"

	"github.com/tronicjosh/emfcompliancev1/compliance"
	"github.com/tronicjosh/emfcompliancev1/config"
)

// boundaryCmd represents the boundary command
var boundaryCmd = &cobra.Command{
	Use:   "boundary <config.yaml>",
	Short: "Compute compliance boundary distances only",
	Long: `
Computes the compliance boundary distance for every configured antenna
(or a single one with --antenna) without sweeping the grid. The search
direction is an azimuth in degrees relative to the antenna boresight.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		antennaID, _ := cmd.Flags().GetString("antenna")
		azimuth, _ := cmd.Flags().GetFloat64("azimuth")

		if err := runBoundaries(args[0], antennaID, azimuth); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(boundaryCmd)
	boundaryCmd.Flags().StringP("antenna", "a", "", "compute for a single antenna id")
	boundaryCmd.Flags().Float64("azimuth", 0, "search direction, degrees from the antenna boresight")
}

func runBoundaries(configPath, antennaID string, azimuth float64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	comp, err := compliance.New(cfg.Compliance.Standard, compliance.ParseCategory(cfg.Compliance.Category))
	if err != nil {
		return err
	}
	s, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	if antennaID != "" {
		dist, err := s.FindComplianceBoundary(antennaID, comp, azimuth)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %.1f m\n", antennaID, dist)
		return nil
	}

	boundaries := make(map[string]float64, len(s.Antennas()))
	for _, ant := range s.Antennas() {
		dist, err := s.FindComplianceBoundary(ant.ID, comp, azimuth)
		if err != nil {
			return err
		}
		boundaries[ant.ID] = dist
	}

	ids := make([]string, 0, len(boundaries))
	for id := range boundaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("%s: %.1f m\n", id, boundaries[id])
	}
	return nil
}
