// Package profile loads and validates the portfolio owner's resume data.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	schemadocs "github.com/jonathan/portfolio-drafter/schemas"

	"github.com/jonathan/portfolio-drafter/internal/schemas"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

//go:embed default.json
var defaultProfile []byte

var (
	defaultOnce   sync.Once
	defaultParsed *types.Profile
	defaultErr    error
)

// LoadError represents a failure to read, validate or decode a profile document.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the embedded portfolio profile. It is parsed once and must be
// treated as read-only by callers.
func Default() (*types.Profile, error) {
	defaultOnce.Do(func() {
		defaultParsed, defaultErr = Parse("(embedded)", defaultProfile)
	})
	return defaultParsed, defaultErr
}

// Load reads a profile from path, or returns the embedded default when path is empty.
func Load(path string) (*types.Profile, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, data)
}

// Parse validates data against the profile JSON Schema, decodes it and runs
// struct-level validation.
func Parse(source string, data []byte) (*types.Profile, error) {
	schema, err := schemadocs.Read(schemadocs.Profile)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "schema unavailable", Cause: err}
	}

	if err := schemas.ValidateJSONBytes(schemadocs.Profile, schema, data); err != nil {
		return nil, &LoadError{Source: source, Message: "does not match schema", Cause: err}
	}

	var p types.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &LoadError{Source: source, Message: "failed to decode", Cause: err}
	}

	if err := p.Validate(); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid field values", Cause: err}
	}

	return &p, nil
}
