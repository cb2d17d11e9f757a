package qfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params holds per-problem search defaults read from a YAML sidecar
// next to a matrix file. Every field is optional; pointer fields
// distinguish "absent" from an explicit zero. Command-line flags
// override anything set here.
type Params struct {
	Tenure    *int     `yaml:"tenure,omitempty"`
	Scale     *float64 `yaml:"scale,omitempty"`
	TimeoutMs *int64   `yaml:"timeout_ms,omitempty"`
	Restarts  *int     `yaml:"restarts,omitempty"`
	Seed      *int64   `yaml:"seed,omitempty"`
}

// LoadParams reads the YAML sidecar for the matrix at path
// ("<path>.yaml"). A missing sidecar is not an error: it returns a
// zero Params and found=false.
func LoadParams(path string) (Params, bool, error) {
	sidecar := path + ".yaml"
	data, err := os.ReadFile(sidecar)
	if os.IsNotExist(err) {
		return Params{}, false, nil
	}
	if err != nil {
		return Params{}, false, err
	}

	var p Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, false, fmt.Errorf("decoding %s: %w", sidecar, err)
	}
	return p, true, nil
}
