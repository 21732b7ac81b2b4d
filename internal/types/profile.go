// Package types provides type definitions for structured data used throughout the portfolio drafter.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Profile is the portfolio owner's resume data. It is loaded once at startup
// and shared read-only by every draft invocation.
type Profile struct {
	Name                string          `json:"name" validate:"required"`
	Headline            string          `json:"headline,omitempty"`
	Persona             string          `json:"persona" validate:"required"`
	// Perspective names the sender in the definite form ("the iOS developer").
	// Empty falls back to Persona.
	Perspective         string          `json:"perspective,omitempty"`
	ProfessionalSummary string          `json:"professional_summary" validate:"required"`
	Skills              []SkillCategory `json:"skills" validate:"required,min=1,dive"`
	Experience          []Experience    `json:"experience" validate:"dive"`
	Projects            []Project       `json:"projects" validate:"dive"`
	Contact             Contact         `json:"contact"`
}

// SkillCategory is one named group of skills. Categories are kept as a slice
// so the declared order survives decoding.
type SkillCategory struct {
	Category string   `json:"category" validate:"required"`
	Items    []string `json:"items" validate:"required,min=1,dive,required"`
}

// Experience is a single work history entry.
type Experience struct {
	Title    string   `json:"title" validate:"required"`
	Date     string   `json:"date" validate:"required"`
	Summary  string   `json:"summary"`
	Projects []string `json:"projects,omitempty"`
}

// Project is a showcased project with an optional external link (e.g. App Store).
type Project struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
}

// Contact holds the public contact links shown in the contact section.
type Contact struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// SkillsText flattens the skills as "Category: a, b. Category: c" in declared order.
func (p *Profile) SkillsText() string {
	segments := make([]string, 0, len(p.Skills))
	for _, sc := range p.Skills {
		segments = append(segments, sc.Category+": "+strings.Join(sc.Items, ", "))
	}
	return strings.Join(segments, ". ")
}

// PerspectiveText returns Perspective, or Persona when it is unset.
func (p *Profile) PerspectiveText() string {
	if p.Perspective != "" {
		return p.Perspective
	}
	return p.Persona
}

// Project returns the project with the given name, or nil.
func (p *Profile) Project(name string) *Project {
	for i := range p.Projects {
		if p.Projects[i].Name == name {
			return &p.Projects[i]
		}
	}
	return nil
}
