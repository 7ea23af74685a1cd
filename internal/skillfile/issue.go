package skillfile

import "fmt"

// Severity tells whether an issue fails the run or is repaired in place.
type Severity string

const (
	// SeverityViolation is a hard structural error. It fails the run.
	SeverityViolation Severity = "violation"
	// SeverityFixup is a deviation that the normalizer repairs.
	SeverityFixup Severity = "fixup"
)

// Issue is a single finding in a skill file.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"` // 1-based; 0 means the whole file
}

// String formats the issue for logs. Line-level messages already name their line.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// IsViolation reports whether the issue is a hard violation.
func (i Issue) IsViolation() bool {
	return i.Severity == SeverityViolation
}

func violation(line int, format string, args ...any) Issue {
	return Issue{Severity: SeverityViolation, Message: fmt.Sprintf(format, args...), Line: line}
}

func fixup(line int, format string, args ...any) Issue {
	return Issue{Severity: SeverityFixup, Message: fmt.Sprintf(format, args...), Line: line}
}

// HasViolations reports whether any issue in the list is a violation.
func HasViolations(issues []Issue) bool {
	for _, issue := range issues {
		if issue.IsViolation() {
			return true
		}
	}
	return false
}
