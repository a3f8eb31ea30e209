// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-wizard/internal/progress"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders boxed summaries. Colors are used only when out is a terminal.
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(boxWidth),
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		muted: r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title, content string) {
	body := lipgloss.JoinVertical(lipgloss.Left, p.title.Render(title), "", content)
	fmt.Fprintln(p.out, p.box.Render(body))
}

// PrintSummary outputs the profile handed off on completion.
func (p *Printer) PrintSummary(s types.ProfileSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", s.BasicInfo.FullName))
	sb.WriteString(fmt.Sprintf("Email:       %s\n", s.BasicInfo.Email))
	sb.WriteString(fmt.Sprintf("Phone:       %s\n", s.BasicInfo.Phone))
	if s.BasicInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:    %s\n", s.BasicInfo.Location))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experiences: %d\n", s.ExperiencesCount))
	sb.WriteString(fmt.Sprintf("Projects:    %d\n", s.ProjectsCount))
	sb.WriteString(fmt.Sprintf("Education:   %d\n", s.EducationCount))
	sb.WriteString(fmt.Sprintf("Skills:      %d", s.SkillsCount))

	p.printBox("PROFILE SUMMARY", sb.String())
}

// PrintReview outputs the per-section review with a progress line.
func (p *Printer) PrintReview(r validation.Report, pct int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Progress: %d%%  %s\n\n", pct, progress.Encouragement(pct)))

	for _, item := range r.Items {
		var mark string
		switch item.Status {
		case validation.StatusComplete:
			mark = p.ok.Render("✓")
		case validation.StatusNotAdded:
			mark = p.muted.Render("○")
		default:
			mark = p.warn.Render("!")
		}
		label := item.Label
		if item.Optional {
			label += " (optional)"
		}
		sb.WriteString(fmt.Sprintf("%s %-28s %d\n", mark, label, item.Count))
		if item.Message != "" && item.Status != validation.StatusComplete {
			sb.WriteString(p.muted.Render("  "+item.Message) + "\n")
		}
	}

	sb.WriteString("\n")
	if r.Ready {
		sb.WriteString(p.ok.Render(r.Message))
	} else {
		sb.WriteString(p.warn.Render(r.Message))
	}

	p.printBox("PROFILE REVIEW", sb.String())
}

// PrintMapped lists the resume snippets already copied into the profile.
func (p *Printer) PrintMapped(mapped []string) {
	if len(mapped) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d snippets used from the resume:\n\n", len(mapped)))
	count := min(len(mapped), maxItemsToShow)
	for i := 0; i < count; i++ {
		text := mapped[i]
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", text))
	}
	if len(mapped) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(mapped)-maxItemsToShow))
	}

	p.printBox("MAPPED TEXT", strings.TrimSuffix(sb.String(), "\n"))
}
