package skillfile

import "strings"

// HeadingPrefix is the literal prefix every skill file must start with.
const HeadingPrefix = "## "

// CheckFile checks whole-file preconditions of raw text before its lines are parsed.
// Every check runs regardless of the others.
func CheckFile(raw string) []Issue {
	var issues []Issue

	if strings.Contains(raw, "\r") {
		issues = append(issues, fixup(0, "expected LF linebreaks, not CRLF or CR"))
	}

	if !strings.HasPrefix(raw, HeadingPrefix) {
		issues = append(issues, violation(0, "no markdown «## Heading»"))
	}

	if !strings.HasSuffix(raw, "\n") {
		issues = append(issues, fixup(0, "no newline at the end of file"))
	}

	return issues
}
