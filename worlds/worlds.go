// Package worlds embeds the bundled world descriptions.
package worlds

import (
	_ "embed"
	"fmt"
	"os"
)

// Pirate is the default adventure.
//
//go:embed pirate.yaml
var Pirate []byte

// Source returns the world document at path, or Pirate when path is empty.
func Source(path string) ([]byte, error) {
	if path == "" {
		return Pirate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world %s: %w", path, err)
	}
	return data, nil
}
