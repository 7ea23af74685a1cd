// Package checker runs the skill file contract and normalizer over a repository
// and persists canonical forms.
package checker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/andywolf/skillcheck/internal/config"
	"github.com/andywolf/skillcheck/internal/console"
	"github.com/andywolf/skillcheck/internal/events"
	"github.com/andywolf/skillcheck/internal/skillfile"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// ErrViolations is returned by callers when a run found hard violations.
var ErrViolations = errors.New("skill files have format violations")

// Checker validates and repairs skill files below a repository root.
type Checker struct {
	root    string
	skills  config.SkillsConfig
	console *console.Console
	sink    events.Sink
	runID   string
	dryRun  bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithDryRun reports rewrites without persisting them.
func WithDryRun(dryRun bool) Option {
	return func(c *Checker) {
		c.dryRun = dryRun
	}
}

// WithSink sends every finding to sink as well as the console.
func WithSink(sink events.Sink, runID string) Option {
	return func(c *Checker) {
		c.sink = sink
		c.runID = runID
	}
}

// New creates a Checker for the repository at root.
func New(root string, skills config.SkillsConfig, con *console.Console, opts ...Option) *Checker {
	c := &Checker{
		root:    root,
		skills:  skills,
		console: con,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SkillsDir returns the absolute skills directory.
func (c *Checker) SkillsDir() string {
	return filepath.Join(c.root, c.skills.Dir)
}

// Discover lists skill files matching the include pattern and none of the
// exclude patterns, as slash paths relative to the root, sorted.
func (c *Checker) Discover() ([]string, error) {
	dir := c.SkillsDir()
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("skills path is not a directory: %s", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), c.skills.Include, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list skill files: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if c.excluded(match) {
			continue
		}
		files = append(files, path.Join(filepath.ToSlash(c.skills.Dir), match))
	}
	sort.Strings(files)
	return files, nil
}

func (c *Checker) excluded(name string) bool {
	for _, pattern := range c.skills.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Matches reports whether a root-relative slash path is a checked skill file.
func (c *Checker) Matches(rel string) bool {
	prefix := filepath.ToSlash(c.skills.Dir) + "/"
	name, ok := strings.CutPrefix(rel, prefix)
	if !ok {
		return false
	}
	if ok, _ := doublestar.Match(c.skills.Include, name); !ok {
		return false
	}
	return !c.excluded(name)
}

// CheckAll discovers and checks every skill file.
func (c *Checker) CheckAll() (*Summary, error) {
	files, err := c.Discover()
	if err != nil {
		return nil, err
	}
	return c.CheckFiles(files)
}

// CheckFiles checks the given root-relative files in order. A file with
// violations does not stop the run; an I/O error does.
func (c *Checker) CheckFiles(files []string) (*Summary, error) {
	summary := &Summary{}
	for _, file := range files {
		c.console.Check(SectionName(file))
		result, err := c.CheckFile(file)
		if err != nil {
			return summary, err
		}
		summary.Files = append(summary.Files, result)
	}

	c.emit(events.Event{
		RunID:  c.runID,
		Type:   events.EventSummary,
		Skills: summary.Skills(),
		Failed: summary.Failed(),
	})
	return summary, nil
}

// CheckFile checks, reports and, when needed, rewrites one root-relative file.
func (c *Checker) CheckFile(file string) (*FileResult, error) {
	raw, contract, err := LoadFile(c.root, file)
	if err != nil {
		return nil, err
	}

	fr := &FileResult{
		Path:       file,
		Contract:   contract,
		Result:     skillfile.Normalize(file, raw),
		SizeBefore: len(raw),
	}
	fr.SizeAfter = len(fr.Result.Canonical)

	for _, issue := range fr.Issues() {
		c.console.Issue(file, issue)
		c.emit(events.IssueEvent(c.runID, file, issue))
	}

	if fr.Result.Changed(raw) {
		if c.dryRun {
			c.console.Skipped(file, fr.SizeBefore, fr.SizeAfter)
		} else {
			if err := writeFile(filepath.Join(c.root, filepath.FromSlash(file)), fr.Result.Canonical); err != nil {
				return nil, err
			}
			fr.Rewritten = true
			c.console.Saved(file, fr.SizeBefore, fr.SizeAfter)
			c.emit(events.Event{
				RunID:      c.runID,
				Type:       events.EventRewrite,
				File:       file,
				SizeBefore: fr.SizeBefore,
				SizeAfter:  fr.SizeAfter,
			})
		}
	}

	c.console.Skills(len(fr.Result.Skills))
	c.emit(events.Event{
		RunID:  c.runID,
		Type:   events.EventFile,
		File:   file,
		Skills: len(fr.Result.Skills),
		Failed: fr.Failed(),
	})
	return fr, nil
}

// emit forwards to the sink. Sink failures are reported but never fail a check.
func (c *Checker) emit(event events.Event) {
	if c.sink == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = timeNow()
	}
	if err := c.sink.Write([]events.Event{event}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record event: %v\n", err)
	}
}

// LoadFile reads a root-relative file and applies the whole-file contract.
func LoadFile(root, file string) (string, []skillfile.Issue, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	raw := string(data)
	return raw, skillfile.CheckFile(raw), nil
}

// SectionName returns the file name without its .md extension.
func SectionName(file string) string {
	return strings.TrimSuffix(path.Base(file), ".md")
}

func writeFile(name, content string) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(name, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
