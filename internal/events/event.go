// Package events records check findings as JSON lines for tooling and CI.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/andywolf/skillcheck/internal/skillfile"
)

// EventType identifies the category of a check event.
type EventType string

const (
	// EventIssue is a violation or fixup found in a file.
	EventIssue EventType = "issue"
	// EventRewrite is a file persisted in canonical form.
	EventRewrite EventType = "rewrite"
	// EventFile is the per-file result with its skill count.
	EventFile EventType = "file"
	// EventSummary closes a run.
	EventSummary EventType = "summary"
)

// Event is a single JSONL record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`

	// RunID groups every event of one run.
	RunID string `json:"run_id"`

	Type EventType `json:"type"`

	// File is the skill file path relative to the repository root.
	File string `json:"file,omitempty"`

	Severity skillfile.Severity `json:"severity,omitempty"`
	Message  string             `json:"message,omitempty"`
	Line     int                `json:"line,omitempty"`

	// Skills is the skill count for file and summary events.
	Skills int `json:"skills,omitempty"`

	// SizeBefore and SizeAfter are byte lengths for rewrite events.
	SizeBefore int `json:"size_before,omitempty"`
	SizeAfter  int `json:"size_after,omitempty"`

	// Failed is set on summary events when any violation occurred.
	Failed bool `json:"failed,omitempty"`
}

// NewRunID returns a fresh identifier for a run.
func NewRunID() string {
	return "skillcheck-" + uuid.New().String()[:8]
}

// IssueEvent converts a finding in file into an event.
func IssueEvent(runID, file string, issue skillfile.Issue) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Type:      EventIssue,
		File:      file,
		Severity:  issue.Severity,
		Message:   issue.Message,
		Line:      issue.Line,
	}
}
