package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["person"],
	"properties": {
		"person": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"tags": {"type": "array", "items": {"type": "string"}, "minItems": 1}
			}
		}
	}
}`

func TestValidateJSONBytes_Valid(t *testing.T) {
	err := ValidateJSONBytes("person", []byte(personSchema), []byte(`{"person": {"name": "test"}}`))
	assert.NoError(t, err)
}

func TestValidateJSONBytes_MissingField(t *testing.T) {
	err := ValidateJSONBytes("person", []byte(personSchema), []byte(`{"age": 30}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields(), "(root)")
}

func TestValidateJSONBytes_NestedField(t *testing.T) {
	err := ValidateJSONBytes("person", []byte(personSchema), []byte(`{"person": {}}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields(), "person")
}

func TestValidateJSONBytes_ArrayMinItems(t *testing.T) {
	err := ValidateJSONBytes("person", []byte(personSchema), []byte(`{"person": {"name": "x", "tags": []}}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields(), "person.tags")
}

func TestValidateJSONBytes_MalformedDocument(t *testing.T) {
	err := ValidateJSONBytes("person", []byte(personSchema), []byte(`{ invalid json }`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "person", loadErr.Name)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}
