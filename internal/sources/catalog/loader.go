// Package catalog resolves raw URLs against a curated YAML catalog of
// known mining/faucet/staking sites, so the add-by-url flow can
// prefill an entry instead of leaving the user with a bare link.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the site catalog file.
type Loader struct {
	filePath string
}

// NewLoader creates a catalog loader for the given file.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the catalog YAML.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return f, nil
}
