// Package schemas holds the JSON Schema documents for the portfolio data files.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Profile is the schema file for the portfolio profile.
const Profile = "profile.schema.json"

// Read returns the raw schema document with the given file name.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return data, nil
}
