// Package encoding provides utilities for encoding, decoding and writing files.
package encoding

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML file and unmarshals it into the provided type.
// Returns nil, nil if the file does not exist.
func LoadYAML[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var result T
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	return &result, nil
}

// SaveYAML marshals the value to YAML and writes it to path with 0600
// permissions. Parent directories are created if needed.
func SaveYAML[T any](path string, value T) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return WriteFileSecure(path, data)
}
