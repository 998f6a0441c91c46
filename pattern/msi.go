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

// MSI is a tabulated-cut pattern built from two one-degree cuts, one
// horizontal and one vertical, as found in manufacturer MSI/PLN files.
// The tables store relative attenuation from the peak gain in dB.
type MSI struct {
	Name         string
	FrequencyMHz float64

	maxGainDBi float64
	horizontal [360]float64
	vertical   [360]float64
}

// LoadMSI parses an MSI/PLN pattern file. The format is line oriented:
// keyword-prefixed metadata lines (NAME, FREQUENCY, GAIN) followed by a
// HORIZONTAL and a VERTICAL section of up to 360 "angle gain" rows each.
// Angles are rounded to the nearest degree and wrapped mod 360; rows
// beyond 360 per section and malformed rows are ignored.
func LoadMSI(filename string) (*MSI, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open MSI file %s: %w", filename, err)
	}
	defer file.Close()

	m := &MSI{}
	var readingHorizontal, readingVertical bool
	var hCount, vCount int

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "NAME"):
			if fields := strings.Fields(line); len(fields) > 1 {
				m.Name = strings.TrimSpace(line[len(fields[0]):])
			}
		case strings.HasPrefix(line, "FREQUENCY"):
			if fields := strings.Fields(line); len(fields) > 1 {
				m.FrequencyMHz, _ = strconv.ParseFloat(fields[1], 64)
			}
		case strings.HasPrefix(line, "GAIN"):
			if fields := strings.Fields(line); len(fields) > 1 {
				m.maxGainDBi, _ = strconv.ParseFloat(fields[1], 64)
			}
		case strings.HasPrefix(line, "HORIZONTAL"):
			readingHorizontal, readingVertical = true, false
			hCount = 0
		case strings.HasPrefix(line, "VERTICAL"):
			readingHorizontal, readingVertical = false, true
			vCount = 0
		case readingHorizontal || readingVertical:
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			angle, err1 := strconv.ParseFloat(fields[0], 64)
			gain, err2 := strconv.ParseFloat(fields[1], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			idx := int(math.Round(angle)) % 360
			if idx < 0 {
				idx += 360
			}
			if readingHorizontal && hCount < 360 {
				m.horizontal[idx] = gain
				hCount++
			} else if readingVertical && vCount < 360 {
				m.vertical[idx] = gain
				vCount++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MSI file %s: %w", filename, err)
	}

	log.Debugf("loaded MSI pattern %q: %.0f MHz, peak %.1f dBi (%d H / %d V rows)",
		m.Name, m.FrequencyMHz, m.maxGainDBi, hCount, vCount)
	return m, nil
}

// interpolate linearly interpolates between adjacent one-degree entries,
// wrapping periodically at the 360/0 seam.
func interpolate(table *[360]float64, angleDeg float64) float64 {
	angleDeg = wrap360(angleDeg)
	lo := int(math.Floor(angleDeg))
	hi := (lo + 1) % 360
	frac := angleDeg - float64(lo)
	return table[lo]*(1-frac) + table[hi]*frac
}

// GainDBi combines the two 1-D cuts into a pseudo-3D estimate: the total
// attenuation is the sum of the azimuth-interpolated horizontal cut and
// the vertical cut sampled at the vertical angle convention of the file
// (0 = horizon, increasing downwards, so verticalAngle = -elevation).
// Summing the two cuts is an approximation of the true 3-D pattern and
// is kept as-is: changing it changes computed compliance outcomes.
func (m *MSI) GainDBi(azimuthDeg, elevationDeg float64) float64 {
	hAtten := interpolate(&m.horizontal, azimuthDeg)
	vAtten := interpolate(&m.vertical, wrap360(-elevationDeg))
	return m.maxGainDBi - (hAtten + vAtten)
}

func (m *MSI) MaxGainDBi() float64 { return m.maxGainDBi }
