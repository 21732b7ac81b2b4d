package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/portfolio-drafter/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Narayanasamy", p.Name)
	assert.Equal(t, "an iOS developer", p.Persona)
	assert.Equal(t, "the iOS developer", p.PerspectiveText())
	require.Len(t, p.Skills, 5)
	assert.Equal(t, "Languages", p.Skills[0].Category)
	assert.Equal(t, "Development", p.Skills[4].Category)
	assert.Len(t, p.Experience, 3)
	assert.Len(t, p.Projects, 4)
	assert.Equal(t, "https://apps.apple.com/app/ikea", p.Project("IKEA").Link)
}

func TestDefault_SharedInstance(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	d, _ := Default()
	assert.Same(t, d, p)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	doc := `{
		"name": "Go Dev",
		"persona": "a backend engineer",
		"professional_summary": "Ships services.",
		"skills": [{"category": "Languages", "items": ["Go", "SQL"]}],
		"projects": [{"name": "svc", "description": "A service."}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Languages: Go, SQL", p.SkillsText())
	assert.Empty(t, p.Projects[0].Link)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "failed to read file", loadErr.Message)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse("test", []byte(`{"name": "x", "persona": "y", "professional_summary": "z", "skills": []}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestParse_StructViolation(t *testing.T) {
	doc := `{
		"name": "x",
		"persona": "y",
		"professional_summary": "z",
		"skills": [{"category": "A", "items": ["b"]}],
		"projects": [{"name": "p", "description": "d", "link": "not-a-url"}]
	}`
	_, err := Parse("test", []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid field values")
}

func TestParse_UnknownField(t *testing.T) {
	doc := `{
		"name": "x",
		"persona": "y",
		"professional_summary": "z",
		"skills": [{"category": "A", "items": ["b"]}],
		"hobbies": ["chess"]
	}`
	_, err := Parse("test", []byte(doc))
	assert.Error(t, err)
}
