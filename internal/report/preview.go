package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render converts markdown to styled terminal output wrapped to width.
func Render(md string, width int) (string, error) {
	if width < 40 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
