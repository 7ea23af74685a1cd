// Package console prints check progress and findings for humans.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/andywolf/skillcheck/internal/skillfile"
)

var (
	colorRed    = lipgloss.Color("#EF4444")
	colorYellow = lipgloss.Color("#EAB308")
	colorCyan   = lipgloss.Color("#06B6D4")
	colorWhite  = lipgloss.Color("#F9FAFB")
	colorBlack  = lipgloss.Color("#000000")
	colorDim    = lipgloss.Color("#6B7280")
)

// Console writes styled lines to an output stream.
type Console struct {
	out io.Writer

	title     lipgloss.Style
	info      lipgloss.Style
	dim       lipgloss.Style
	emphasis  lipgloss.Style
	violation lipgloss.Style
	fixup     lipgloss.Style
}

// New creates a Console writing to out. Colors are only emitted when out
// is a terminal.
func New(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:       out,
		title:     r.NewStyle().Foreground(colorWhite).Bold(true),
		info:      r.NewStyle().Foreground(colorCyan),
		dim:       r.NewStyle().Foreground(colorDim),
		emphasis:  r.NewStyle().Foreground(colorWhite).Bold(true),
		violation: r.NewStyle().Foreground(colorWhite).Background(colorRed).Bold(true),
		fixup:     r.NewStyle().Foreground(colorBlack).Background(colorYellow).Bold(true),
	}
}

// Banner prints the run header.
func (c *Console) Banner(title string) {
	fmt.Fprintln(c.out, c.title.Render(title))
	fmt.Fprintln(c.out, c.info.Render("Auto Checker"))
}

// Check announces the skill file section about to be checked.
func (c *Console) Check(section string) {
	fmt.Fprintf(c.out, "\nCheck: %s\n", c.emphasis.Render(section))
}

// Issue prints a finding followed by the file it belongs to.
func (c *Console) Issue(file string, issue skillfile.Issue) {
	if issue.IsViolation() {
		fmt.Fprintln(c.out, c.violation.Render(" Wrong file format: "+issue.Message+" "))
	} else {
		fmt.Fprintln(c.out, c.fixup.Render(" Fixup file format: "+issue.Message+" "))
	}
	fmt.Fprintf(c.out, "File: %s\n", file)
}

// Saved reports a rewritten file and its size change.
func (c *Console) Saved(file string, before, after int) {
	fmt.Fprintf(c.out, "Fixup: %d -> %d saved: %s\n", before, after, file)
}

// Skipped reports a file that would be rewritten in dry-run mode.
func (c *Console) Skipped(file string, before, after int) {
	fmt.Fprintln(c.out, c.dim.Render(fmt.Sprintf("Fixup: %d -> %d not saved (dry run): %s", before, after, file)))
}

// Skills prints the number of skills found in a file.
func (c *Console) Skills(n int) {
	fmt.Fprintln(c.out, c.info.Render(fmt.Sprintf("Skills: %d", n)))
}

// Totals prints the aggregate line at the end of a run.
func (c *Console) Totals(files, skills, violations, fixups, rewritten int) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.info.Render(fmt.Sprintf("Files: %d, skills: %d, violations: %d, fixups: %d, rewritten: %d",
		files, skills, violations, fixups, rewritten)))
}

// Printf prints an unstyled line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
