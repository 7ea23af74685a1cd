// Package wizard provides interactive prompts for CLI commands.
package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/andywolf/skillcheck/internal/config"
)

// PromptConfig lets the user adjust the main configuration values.
func PromptConfig(cfg *config.Config) (*config.Config, error) {
	title := cfg.Title
	dir := cfg.Skills.Dir
	exclude := strings.Join(cfg.Skills.Exclude, ", ")
	repository := cfg.Badge.Repository

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Report title").
				Value(&title),
			huh.NewInput().
				Title("Skills directory").
				Description("Relative to the repository root").
				Value(&dir),
			huh.NewInput().
				Title("Excluded files").
				Description("Comma-separated glob patterns, relative to the skills directory").
				Value(&exclude),
			huh.NewInput().
				Title("Badge repository").
				Description("org/repo; leave empty to read the git remote").
				Value(&repository),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	updated := *cfg
	updated.Title = strings.TrimSpace(title)
	updated.Skills.Dir = strings.TrimSpace(dir)
	updated.Skills.Exclude = parsePatterns(exclude)
	updated.Badge.Repository = strings.TrimSpace(repository)
	return &updated, nil
}

// ConfirmOverwrite asks the user to confirm replacing an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Existing configuration found").
				Description(path),

			huh.NewConfirm().
				Title("Overwrite it?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

func parsePatterns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
