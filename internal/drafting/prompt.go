// Package drafting implements the email-draft workflow: prompt construction,
// the throttling-aware retry loop around one generation call, and mapping of
// every outcome to a types.DraftResult.
package drafting

import (
	"github.com/jonathan/portfolio-drafter/internal/prompts"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

// BuildPrompt renders the email-draft template for targetRole. The output is
// byte-stable: the same role and profile always yield the same prompt.
func BuildPrompt(targetRole string, profile *types.Profile) (string, error) {
	template, err := prompts.Get(prompts.EmailFile, prompts.EmailDraftKey)
	if err != nil {
		return "", err
	}

	return prompts.Format(template, map[string]string{
		"Persona":     profile.Persona,
		"Perspective": profile.PerspectiveText(),
		"TargetRole":  targetRole,
		"Summary":     profile.ProfessionalSummary,
		"Skills":      profile.SkillsText(),
	}), nil
}
