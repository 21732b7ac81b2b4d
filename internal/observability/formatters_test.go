package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/jonathan/portfolio-drafter/internal/types"
	"github.com/stretchr/testify/assert"
)

func testProfile() *types.Profile {
	return &types.Profile{
		Name:                "Test Developer",
		Headline:            "iOS Developer",
		Persona:             "an iOS developer",
		ProfessionalSummary: "Builds apps.",
		Skills: []types.SkillCategory{
			{Category: "Languages", Items: []string{"Swift", "Objective-C"}},
			{Category: "Tools", Items: []string{"Xcode"}},
		},
		Experience: []types.Experience{
			{Title: "iOS Developer", Date: "2023 - Present", Projects: []string{"MeinsteinAi"}},
		},
		Projects: []types.Project{
			{Name: "MeinsteinAi", Description: "Learning app", Link: "https://apps.apple.com/app/id1"},
		},
		Contact: types.Contact{Email: "dev@example.com"},
	}
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(testProfile())
	output := buf.String()

	for _, want := range []string{"ABOUT", "SKILLS", "EXPERIENCE", "PROJECTS", "CONTACT",
		"Test Developer", "Languages: Swift, Objective-C", "2023 - Present", "MeinsteinAi", "dev@example.com"} {
		assert.Contains(t, output, want)
	}
	assert.Less(t, strings.Index(output, "Languages"), strings.Index(output, "Tools"))
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile_ManyProjects(t *testing.T) {
	p := testProfile()
	p.Projects = nil
	for i := 0; i < 7; i++ {
		p.Projects = append(p.Projects, types.Project{Name: "P", Description: "d"})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(p)
	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintProfile_OmitsEmptySections(t *testing.T) {
	p := testProfile()
	p.Experience = nil
	p.Projects = nil
	p.Contact = types.Contact{}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(p)
	output := buf.String()

	assert.NotContains(t, output, "EXPERIENCE")
	assert.NotContains(t, output, "PROJECTS")
	assert.NotContains(t, output, "CONTACT")
}

func TestPrintDraftEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	id := uuid.New()

	p.PrintDraftEvent(drafting.Event{Kind: drafting.EventAttempt, RequestID: id, Attempt: 2})
	p.PrintDraftEvent(drafting.Event{Kind: drafting.EventThrottled, RequestID: id, Attempt: 2, Delay: 2 * time.Second})
	p.PrintDraftEvent(drafting.Event{Kind: drafting.EventResolved, RequestID: id, Attempt: 3, Outcome: types.OutcomeSuccess})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "attempt 2/5")
	assert.Contains(t, lines[1], "retrying in 2s")
	assert.Contains(t, lines[2], "success after 3 attempt(s)")
	assert.True(t, strings.HasPrefix(lines[0], "["+id.String()[:8]+"]"))
}

func TestPrintDraftEvent_FinalThrottle(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDraftEvent(drafting.Event{Kind: drafting.EventThrottled, RequestID: uuid.New(), Attempt: 5})

	assert.Contains(t, buf.String(), "rate limited, no attempts left")
	assert.NotContains(t, buf.String(), "retrying")
}

func TestPrintDraftResult_WrapsText(t *testing.T) {
	var buf bytes.Buffer
	text := strings.Repeat("word ", 40) + "end"
	NewPrinter(&buf).PrintDraftResult("Mobile Engineer", types.DraftSucceeded(text, 1))
	output := buf.String()

	assert.Contains(t, output, "EMAIL DRAFT: Mobile Engineer")
	assert.Contains(t, output, "end")
	assert.NotContains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestPrintDraftResult_Failure(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDraftResult("", types.DraftFailed(types.OutcomeEmptyInput, 0, nil))
	output := buf.String()

	assert.Contains(t, output, "EMAIL DRAFT")
	assert.Contains(t, output, "empty_input")
	assert.Contains(t, output, types.MessageEmptyInput)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "aaa bbb\nccc", wrap("aaa bbb ccc", 7))
	assert.Equal(t, "line one\n\nline two", wrap("line one\n\nline two", 20))
	assert.Equal(t, "averyveryverylongword", wrap("averyveryverylongword", 5))
}
