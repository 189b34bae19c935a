// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"os"
)

// LoadFixture reads a fixture file verbatim.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
