package checker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChecker_Watch(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "Go.md", "## Go\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *FileResult, 4)
	done := make(chan error, 1)
	c := newTestChecker(root, &bytes.Buffer{})
	go func() {
		done <- c.Watch(ctx, func(fr *FileResult) { results <- fr })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(root, "Skills", "Go.md")
	if err := os.WriteFile(path, []byte("## Go\n- Basics\n  - Maps\n  - Maps\n"), 0o644); err != nil {
		t.Fatalf("write skill file: %v", err)
	}

	select {
	case fr := <-results:
		if fr.Path != "Skills/Go.md" {
			t.Errorf("Path = %q", fr.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch result")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}

	if got := readSkill(t, root, "Go.md"); got != "## Go\n- Basics\n  - Maps\n" {
		t.Errorf("file = %q", got)
	}
}
