package weo

import (
	_ "embed"
	"fmt"
	"os"
)

// ecuadorTable is the IMF World Economic Outlook extract for Ecuador.
//
//go:embed data/ecuador.tsv
var ecuadorTable string

// RawTable returns the embedded WEO table.
func RawTable() string {
	return ecuadorTable
}

// LoadFile reads a replacement table from disk.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return string(data), nil
}
