// internal/config/weights.go

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

// LoadWeights returns the default scoring table with the TOML file at path
// laid over it. Keys missing from the file keep their default. An empty
// path yields the defaults.
func LoadWeights(path string) (compatibility.Weights, error) {
	w := compatibility.DefaultWeights()
	if path == "" {
		return w, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	return ParseWeights(data)
}

// ParseWeights overlays TOML data on the default table and validates the result.
func ParseWeights(data []byte) (compatibility.Weights, error) {
	w := compatibility.DefaultWeights()
	if err := toml.Unmarshal(data, &w); err != nil {
		return compatibility.DefaultWeights(), fmt.Errorf("parse weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return compatibility.DefaultWeights(), err
	}
	return w, nil
}
