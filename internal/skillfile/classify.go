// Package skillfile validates and normalizes skill inventory markdown files.
//
// A skill file follows a fixed three-level grammar:
//
//	## Heading
//
//	- Section
//	  - Skill
//
// Anything else is reported as a structural violation.
package skillfile

import "strings"

// Kind is the structural class of a single line.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindBlank
	KindTopHeading
	KindSectionStart
	KindSkillEntry
)

// Markers of the grammar, matched against the raw (untrimmed) line.
const (
	HeadingMarker = "##"
	SectionMarker = "-"
	SkillMarker   = "  -"
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindTopHeading:
		return "heading"
	case KindSectionStart:
		return "section"
	case KindSkillEntry:
		return "skill"
	default:
		return "unrecognized"
	}
}

// Classify determines the kind of a line.
// Blank detection uses the trimmed line; the other kinds are decided by
// the raw prefix, so indentation matters.
func Classify(line string) Kind {
	switch {
	case strings.TrimSpace(line) == "":
		return KindBlank
	case strings.HasPrefix(line, HeadingMarker):
		return KindTopHeading
	case strings.HasPrefix(line, SectionMarker):
		return KindSectionStart
	case strings.HasPrefix(line, SkillMarker):
		return KindSkillEntry
	default:
		return KindUnrecognized
	}
}

// sectionLabel returns the section name of a SectionStart line.
func sectionLabel(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), SectionMarker))
}

// skillLabel returns the skill name of a SkillEntry line.
func skillLabel(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, SkillMarker))
}
