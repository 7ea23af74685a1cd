// Package report renders the self assessment report and README badge.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/andywolf/skillcheck/internal/config"
)

// Badge builds the shields.io badge linking to a repository.
type Badge struct {
	Label      string
	Base       string
	Style      string
	Host       string
	Repository string
}

// NewBadge creates a Badge from configuration for the given "org/repo".
func NewBadge(cfg config.BadgeConfig, repository string) Badge {
	return Badge{
		Label:      cfg.Label,
		Base:       cfg.Base,
		Style:      cfg.Style,
		Host:       cfg.Host,
		Repository: repository,
	}
}

// Link returns the repository URL the badge points to.
func (b Badge) Link() string {
	return strings.TrimSuffix(b.Host, "/") + "/" + b.Repository
}

// ImageURL returns the badge image URL.
func (b Badge) ImageURL() string {
	if b.Style == "" {
		return b.Base
	}
	return b.Base + "?style=" + b.Style
}

// Markdown returns the badge as a linked markdown image.
func (b Badge) Markdown() string {
	return fmt.Sprintf("[![%s](%s)](%s)", b.Label, b.ImageURL(), b.Link())
}

// Generator renders the report and README documents.
type Generator struct {
	tmpl *template.Template
}

// NewGenerator creates a new report generator.
func NewGenerator() (*Generator, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// Report renders the summary document: a heading, the rendered badge and an
// escaped code block holding the badge source.
func (g *Generator) Report(title string, badge Badge) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Title string
		Badge string
	}{title, badge.Markdown()}
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Readme substitutes the first badge placeholder in a README template.
func (g *Generator) Readme(tmpl string, badge Badge) string {
	return strings.Replace(tmpl, BadgePlaceholder, badge.Markdown(), 1)
}

// WriteFile writes content to a root-relative path, creating parent directories.
func WriteFile(root, rel, content string) error {
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
