package skillfile

import (
	"cmp"
	"slices"
	"strings"
)

// Skill is a nested bullet kept in canonical output.
type Skill struct {
	Section string `json:"section"`
	Label   string `json:"label"`
	Line    int    `json:"line"`
}

// Result is the outcome of normalizing one skill file.
type Result struct {
	Path       string
	Canonical  string
	Skills     []Skill
	Violations []Issue
	Fixups     []Issue
}

// Changed reports whether the canonical text differs from the original.
func (r *Result) Changed(original string) bool {
	return r.Canonical != original
}

// Issues returns violations followed by fixups.
func (r *Result) Issues() []Issue {
	issues := make([]Issue, 0, len(r.Violations)+len(r.Fixups))
	issues = append(issues, r.Violations...)
	return append(issues, r.Fixups...)
}

// sectionSkills holds the labels recorded in the currently open section.
type sectionSkills struct {
	name   string
	opened bool
	seen   map[string]struct{}
}

func (s *sectionSkills) open(name string) {
	s.name = name
	s.opened = true
	clear(s.seen)
}

func (s *sectionSkills) isOpen() bool {
	return s.opened
}

func (s *sectionSkills) has(label string) bool {
	_, ok := s.seen[label]
	return ok
}

func (s *sectionSkills) add(label string) {
	s.seen[label] = struct{}{}
}

// splitLines splits text on LF, CRLF and CR and drops the empty line
// produced by a trailing line break.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Normalize parses a skill file in one pass and builds its canonical form.
// It never stops at a violation: every line is examined.
func Normalize(path, text string) *Result {
	result := &Result{Path: path}
	section := &sectionSkills{seen: make(map[string]struct{})}
	out := make([]outputLine, 0, strings.Count(text, "\n")+1)
	blanks := 0

	for i, raw := range splitLines(text) {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		kind := Classify(raw)

		if kind == KindBlank {
			if section.isOpen() || blanks > 0 {
				result.Fixups = append(result.Fixups, fixup(lineNo, "removed empty line at line %d", lineNo))
			} else {
				out = append(out, outputLine{no: lineNo})
			}
			blanks++
			continue
		}
		// Dropped lines do not end a run of blanks: the run is measured on output.
		// Resetting here would keep both blanks of "## T\n\n* bad\n\n- A\n", and a
		// second pass would then remove one, so normalizing twice would differ.
		if kind != KindUnrecognized {
			blanks = 0
		}

		switch kind {
		case KindTopHeading:
			out = append(out, outputLine{no: lineNo, text: line})
		case KindSectionStart:
			out = append(out, outputLine{no: lineNo, text: line})
			section.open(sectionLabel(raw))
		case KindSkillEntry:
			label := skillLabel(raw)
			if section.has(label) {
				result.Fixups = append(result.Fixups,
					fixup(lineNo, "removed duplicate skill «%s» at line %d", label, lineNo))
				continue
			}
			section.add(label)
			out = append(out, outputLine{no: lineNo, text: SkillMarker + " " + label})
			result.Skills = append(result.Skills, Skill{Section: section.name, Label: label, Line: lineNo})
		default:
			result.Violations = append(result.Violations, violation(lineNo, "unknown structure at line %d", lineNo))
		}
	}

	// A kept blank at the end would become a second trailing line feed.
	for len(out) > 1 && out[len(out)-1].text == "" {
		lineNo := out[len(out)-1].no
		result.Fixups = append(result.Fixups, fixup(lineNo, "removed empty line at line %d", lineNo))
		out = out[:len(out)-1]
	}
	slices.SortStableFunc(result.Fixups, func(a, b Issue) int {
		return cmp.Compare(a.Line, b.Line)
	})

	var b strings.Builder
	for _, l := range out {
		b.WriteString(l.text)
		b.WriteByte('\n')
	}
	if len(out) == 0 {
		b.WriteByte('\n')
	}
	result.Canonical = b.String()
	return result
}

type outputLine struct {
	no   int
	text string
}
