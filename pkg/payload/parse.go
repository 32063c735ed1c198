package payload

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a print request from a byte slice and validates it.
func Parse(data []byte) (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	if err := Validate(&r); err != nil {
		return nil, err
	}

	return &r, nil
}

// ParseFile parses a print request from a JSON file on disk.
func ParseFile(path string) (*Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	return Parse(data)
}
