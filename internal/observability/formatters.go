// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/jonathan/portfolio-drafter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// innerWidth is the usable text width inside a box
	innerWidth = boxWidth - 4
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are
// truncated; pass wrapped content where every word matters.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > innerWidth {
			line = string([]rune(line)[:innerWidth-3]) + "..."
		}
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to the inner width, counting runes.
func pad(s string) string {
	if n := utf8.RuneCountInString(s); n < innerWidth {
		return s + strings.Repeat(" ", innerWidth-n)
	}
	return s
}

// wrap breaks text into lines of at most width runes at word boundaries,
// keeping existing line breaks.
func wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// PrintProfile outputs the portfolio sections: about, skills, experience,
// projects and contact.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(profile.Name + "\n")
	if profile.Headline != "" {
		sb.WriteString(profile.Headline + "\n")
	}
	sb.WriteString("\n" + wrap(profile.ProfessionalSummary, innerWidth))
	p.printBox("ABOUT", sb.String())

	sb.Reset()
	for _, sc := range profile.Skills {
		sb.WriteString(wrap(sc.Category+": "+strings.Join(sc.Items, ", "), innerWidth) + "\n")
	}
	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))

	if len(profile.Experience) > 0 {
		sb.Reset()
		for i, exp := range profile.Experience {
			sb.WriteString(fmt.Sprintf("%s  (%s)\n", exp.Title, exp.Date))
			if len(exp.Projects) > 0 {
				sb.WriteString(fmt.Sprintf("  Projects: %s\n", strings.Join(exp.Projects, ", ")))
			}
			if i < len(profile.Experience)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
	}

	if len(profile.Projects) > 0 {
		sb.Reset()
		count := min(len(profile.Projects), maxItemsToShow)
		for i := 0; i < count; i++ {
			proj := profile.Projects[i]
			sb.WriteString(fmt.Sprintf("• %s\n", proj.Name))
			if proj.Link != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", proj.Link))
			}
		}
		if len(profile.Projects) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(profile.Projects)-maxItemsToShow))
		}
		p.printBox("PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
	}

	c := profile.Contact
	if c.Email != "" || c.LinkedIn != "" || c.GitHub != "" {
		sb.Reset()
		if c.Email != "" {
			sb.WriteString(fmt.Sprintf("Email:    %s\n", c.Email))
		}
		if c.LinkedIn != "" {
			sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", c.LinkedIn))
		}
		if c.GitHub != "" {
			sb.WriteString(fmt.Sprintf("GitHub:   %s\n", c.GitHub))
		}
		p.printBox("CONTACT", strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintDraftEvent outputs one line of retry progress.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDraftEvent(e drafting.Event) {
	id := e.RequestID.String()[:8]
	switch e.Kind {
	case drafting.EventAttempt:
		fmt.Fprintf(p.out, "[%s] attempt %d/%d\n", id, e.Attempt, types.MaxDraftAttempts)
	case drafting.EventThrottled:
		if e.Delay <= 0 {
			fmt.Fprintf(p.out, "[%s] rate limited, no attempts left\n", id)
			return
		}
		fmt.Fprintf(p.out, "[%s] rate limited, retrying in %v\n", id, e.Delay)
	case drafting.EventResolved:
		fmt.Fprintf(p.out, "[%s] %s after %d attempt(s) in %v\n", id, e.Outcome, e.Attempt, e.Elapsed.Round(time.Millisecond))
	}
}

// PrintDraftResult outputs the resolved draft, or its user-facing message.
func (p *Printer) PrintDraftResult(role string, result types.DraftResult) {
	title := "EMAIL DRAFT"
	if strings.TrimSpace(role) != "" {
		title = "EMAIL DRAFT: " + role
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Outcome:  %s\n", result.Outcome))
	sb.WriteString(fmt.Sprintf("Attempts: %d\n\n", result.Attempts))
	sb.WriteString(wrap(result.Message(), innerWidth))

	p.printBox(title, sb.String())
}
