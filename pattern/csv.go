package pattern

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

type angleKey struct {
	az, el int
}

type sparseEntry struct {
	az, el int
	gain   float64
}

// Sparse is a pattern sampled on integer (azimuth, elevation) keys, as
// produced by measurement exports. Lookups without an exact key fall
// back to the nearest stored sample by angular distance.
type Sparse struct {
	gains      map[angleKey]float64
	entries    []sparseEntry // load order, for deterministic nearest scans
	maxGainDBi float64
}

// LoadCSV reads a delimited sparse pattern: rows of at least three
// numeric comma-separated fields (azimuth, elevation, gain). An optional
// header row containing an "azimuth" token (any case) is skipped.
// Unparseable fields and short rows are ignored; a file yielding no
// samples at all is a format error.
func LoadCSV(filename string) (*Sparse, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open CSV pattern file %s: %w", filename, err)
	}
	defer file.Close()

	s := &Sparse{
		gains:      make(map[angleKey]float64),
		maxGainDBi: math.Inf(-1),
	}
	headerSkipped := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !headerSkipped && strings.Contains(strings.ToLower(line), "azimuth") {
			headerSkipped = true
			continue
		}

		var values []float64
		for _, token := range strings.Split(line, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		if len(values) < 3 {
			continue
		}

		az := int(math.Round(values[0]))
		el := int(math.Round(values[1]))
		gain := values[2]

		key := angleKey{az: az, el: el}
		if _, seen := s.gains[key]; !seen {
			s.entries = append(s.entries, sparseEntry{az: az, el: el, gain: gain})
		}
		s.gains[key] = gain
		if gain > s.maxGainDBi {
			s.maxGainDBi = gain
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading CSV pattern file %s: %w", filename, err)
	}

	if len(s.gains) == 0 {
		return nil, fmt.Errorf("no valid pattern data in CSV file %s", filename)
	}

	log.Debugf("loaded sparse CSV pattern %s: %d samples, peak %.1f dBi",
		filename, len(s.entries), s.maxGainDBi)
	return s, nil
}

// GainDBi rounds the query to integer degrees (azimuth wrapped into
// [0,360), elevation clamped to [-90,90]) and returns the stored sample
// on an exact hit. Otherwise it scans all samples for the nearest by
// squared angular distance, wrapping the azimuth difference across the
// seam; ties resolve to the earliest-loaded sample. Cost is linear in
// the table size per query.
func (s *Sparse) GainDBi(azimuthDeg, elevationDeg float64) float64 {
	az := int(math.Round(azimuthDeg))
	el := int(math.Round(elevationDeg))

	for az < 0 {
		az += 360
	}
	for az >= 360 {
		az -= 360
	}
	if el < -90 {
		el = -90
	} else if el > 90 {
		el = 90
	}

	if gain, ok := s.gains[angleKey{az: az, el: el}]; ok {
		return gain
	}

	minDist := math.Inf(1)
	nearest := 0.0
	for _, e := range s.entries {
		azDiff := math.Abs(float64(e.az - az))
		if azDiff > 180 {
			azDiff = 360 - azDiff
		}
		elDiff := math.Abs(float64(e.el - el))
		dist := azDiff*azDiff + elDiff*elDiff
		if dist < minDist {
			minDist = dist
			nearest = e.gain
		}
	}
	return nearest
}

func (s *Sparse) MaxGainDBi() float64 { return s.maxGainDBi }
