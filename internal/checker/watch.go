package checker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch re-checks skill files whenever they are written or created until ctx
// is cancelled. Bursts of events for the same file are coalesced. Each
// checked file is passed to onResult.
func (c *Checker) Watch(ctx context.Context, onResult func(*FileResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(c.SkillsDir(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch skills directory: %w", err)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			rel, err := filepath.Rel(c.root, event.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if !c.Matches(rel) {
				continue
			}
			pending[rel] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for file := range pending {
				files = append(files, file)
			}
			clear(pending)
			sort.Strings(files)

			for _, file := range files {
				c.console.Check(SectionName(file))
				result, err := c.CheckFile(file)
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				if err != nil {
					return err
				}
				if onResult != nil {
					onResult(result)
				}
			}
		}
	}
}
