package events

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Sink receives check events.
type Sink interface {
	Write(events []Event) error
}

var errSinkClosed = errors.New("events sink is closed")

// FileSink appends Events to a JSONL file, one object per line.
// Writes are serialized, so a watch loop and a final summary may share one sink.
type FileSink struct {
	mu   sync.Mutex
	path string
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewFileSink opens path for appending, creating it and its parent directories.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create events directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}

	buf := bufio.NewWriter(file)
	enc := json.NewEncoder(buf)
	// Messages quote labels and headings verbatim.
	enc.SetEscapeHTML(false)

	return &FileSink{path: path, file: file, buf: buf, enc: enc}, nil
}

// Write encodes a batch and flushes it to disk before returning.
func (s *FileSink) Write(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("failed to write to %s: %w", s.path, errSinkClosed)
	}
	for _, event := range events {
		if err := s.enc.Encode(event); err != nil {
			return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
		}
	}
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}
	return nil
}

// Close closes the file. Closing twice is a no-op.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	file := s.file
	s.file = nil

	flushErr := s.buf.Flush()
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close events file: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush before close: %w", flushErr)
	}
	return nil
}

// Path returns the events file path.
func (s *FileSink) Path() string {
	return s.path
}

// ReadEvents decodes every event of a JSONL file. Blank lines are skipped.
func ReadEvents(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}

	var events []Event
	for i, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event on line %d: %w", i+1, err)
		}
		events = append(events, event)
	}
	return events, nil
}

// FilterByType keeps the events of the given types. No types keeps all.
func FilterByType(events []Event, types ...EventType) []Event {
	if len(types) == 0 {
		return events
	}

	var filtered []Event
	for _, event := range events {
		if slices.Contains(types, event.Type) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// LastRun returns the events sharing the run id of the final event in the log.
func LastRun(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}
	runID := events[len(events)-1].RunID

	var run []Event
	for _, event := range events {
		if event.RunID == runID {
			run = append(run, event)
		}
	}
	return run
}
