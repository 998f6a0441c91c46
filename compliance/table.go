package compliance

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"
)

// limitTableFile is the on-disk shape of an external limit table.
type limitTableFile struct {
	Name   string       `json:"name"`
	Limits []LimitEntry `json:"limits"`
}

// loadTable reads a custom limit table from a YAML file. The file holds
// a standard name and an ordered list of limit entries. Frequency
// formulas are selected by standard name, so a table naming itself
// ICNIRP_2020 or ICASA still gets the closed-form mid band.
func (c *Compliance) loadTable(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to load compliance limits from %s: %w", filename, err)
	}

	var table limitTableFile
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to load compliance limits from %s: %w", filename, err)
	}

	if table.Name != "" {
		c.Standard = table.Name
	}
	c.limits = table.Limits

	log.Debugf("loaded limit table %q from %s: %d bands", c.Standard, filename, len(c.limits))
	return nil
}
