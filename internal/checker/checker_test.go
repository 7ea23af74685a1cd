package checker

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/andywolf/skillcheck/internal/config"
	"github.com/andywolf/skillcheck/internal/console"
	"github.com/andywolf/skillcheck/internal/events"
)

func writeSkill(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, "Skills", filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create skills dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write skill file: %v", err)
	}
}

func readSkill(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "Skills", filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read skill file: %v", err)
	}
	return string(data)
}

func newTestChecker(root string, out *bytes.Buffer, opts ...Option) *Checker {
	return New(root, config.Default().Skills, console.New(out), opts...)
}

type memorySink struct {
	events []events.Event
}

func (s *memorySink) Write(batch []events.Event) error {
	s.events = append(s.events, batch...)
	return nil
}

func TestChecker_Discover(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "JavaScript.md", "## JS\n")
	writeSkill(t, root, "Async.md", "## Async\n")
	writeSkill(t, root, "notes.txt", "ignored\n")
	writeSkill(t, root, "drafts/Draft.md", "## Draft\n")

	skills := config.Default().Skills
	skills.Include = "**/*.md"
	skills.Exclude = []string{"drafts/**"}
	c := New(root, skills, console.New(&bytes.Buffer{}))

	files, err := c.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{"Skills/Async.md", "Skills/JavaScript.md"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Discover() = %v, want %v", files, want)
	}

	if !c.Matches("Skills/Async.md") {
		t.Error("Matches(Skills/Async.md) = false")
	}
	if c.Matches("Skills/drafts/Draft.md") {
		t.Error("Matches(Skills/drafts/Draft.md) = true for excluded file")
	}
	if c.Matches("README.md") {
		t.Error("Matches(README.md) = true outside the skills dir")
	}
}

func TestChecker_DiscoverMissingDir(t *testing.T) {
	c := newTestChecker(t.TempDir(), &bytes.Buffer{})
	if _, err := c.Discover(); err == nil {
		t.Fatal("Discover() error = nil, want missing directory error")
	}
}

func TestChecker_CheckAll(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "Clean.md", "## Clean\n\n- Tools\n  - Git\n")
	writeSkill(t, root, "Dirty.md", "## Dirty\r\n\r\n- Languages\r\n  - Go\r\n  - Go\r\n")
	writeSkill(t, root, "Broken.md", "- Tools\n* Bad Item\n  - Make")

	var out bytes.Buffer
	sink := &memorySink{}
	c := newTestChecker(root, &out, WithSink(sink, "run-1"))

	summary, err := c.CheckAll()
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}

	if !summary.Failed() {
		t.Error("Failed() = false, want true")
	}
	if got := summary.Skills(); got != 3 {
		t.Errorf("Skills() = %d, want 3", got)
	}
	// Broken: missing heading, unknown structure.
	if got := summary.Violations(); got != 2 {
		t.Errorf("Violations() = %d, want 2", got)
	}
	// Dirty: CRLF, duplicate. Broken: missing newline.
	if got := summary.Fixups(); got != 3 {
		t.Errorf("Fixups() = %d, want 3", got)
	}
	if got := summary.Rewritten(); !reflect.DeepEqual(got, []string{"Skills/Broken.md", "Skills/Dirty.md"}) {
		t.Errorf("Rewritten() = %v", got)
	}

	if got := readSkill(t, root, "Clean.md"); got != "## Clean\n\n- Tools\n  - Git\n" {
		t.Errorf("clean file changed: %q", got)
	}
	if got := readSkill(t, root, "Dirty.md"); got != "## Dirty\n\n- Languages\n  - Go\n" {
		t.Errorf("dirty file = %q", got)
	}
	if got := readSkill(t, root, "Broken.md"); got != "- Tools\n  - Make\n" {
		t.Errorf("broken file = %q", got)
	}

	console := out.String()
	for _, want := range []string{
		"Wrong file format: unknown structure at line 2",
		"Wrong file format: no markdown «## Heading»",
		"Fixup file format: expected LF linebreaks, not CRLF or CR",
		"Fixup file format: removed duplicate skill «Go» at line 5",
		"File: Skills/Dirty.md",
		"saved: Skills/Dirty.md",
	} {
		if !strings.Contains(console, want) {
			t.Errorf("console output missing %q:\n%s", want, console)
		}
	}

	last := sink.events[len(sink.events)-1]
	if last.Type != events.EventSummary || !last.Failed || last.Skills != 3 || last.RunID != "run-1" {
		t.Errorf("summary event = %+v", last)
	}
	if n := len(events.FilterByType(sink.events, events.EventRewrite)); n != 2 {
		t.Errorf("got %d rewrite events, want 2", n)
	}
}

func TestChecker_FixupsDoNotFail(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "Go.md", "## Go\n\n\n- Basics\n\n  - Slices\n  - Slices")

	summary, err := newTestChecker(root, &bytes.Buffer{}).CheckAll()
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	if summary.Failed() {
		t.Error("Failed() = true for fixups only")
	}
	if got := readSkill(t, root, "Go.md"); got != "## Go\n\n- Basics\n  - Slices\n" {
		t.Errorf("file = %q", got)
	}

	again, err := newTestChecker(root, &bytes.Buffer{}).CheckAll()
	if err != nil {
		t.Fatalf("second CheckAll() error = %v", err)
	}
	if again.Fixups() != 0 || len(again.Rewritten()) != 0 {
		t.Errorf("second run fixups = %d, rewritten = %v", again.Fixups(), again.Rewritten())
	}
}

func TestChecker_DryRun(t *testing.T) {
	root := t.TempDir()
	original := "## Go\n- Basics\n  - Slices\n  - Slices\n"
	writeSkill(t, root, "Go.md", original)

	var out bytes.Buffer
	summary, err := newTestChecker(root, &out, WithDryRun(true)).CheckAll()
	if err != nil {
		t.Fatalf("CheckAll() error = %v", err)
	}
	if got := readSkill(t, root, "Go.md"); got != original {
		t.Errorf("dry run modified file: %q", got)
	}
	if len(summary.Rewritten()) != 0 {
		t.Errorf("Rewritten() = %v, want none", summary.Rewritten())
	}
	if !strings.Contains(out.String(), "not saved (dry run)") {
		t.Errorf("output %q does not mention dry run", out.String())
	}
}

func TestChecker_CheckFilesMissingFile(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "Go.md", "## Go\n")

	_, err := newTestChecker(root, &bytes.Buffer{}).CheckFiles([]string{"Skills/Go.md", "Skills/Missing.md"})
	if err == nil {
		t.Fatal("CheckFiles() error = nil, want read error")
	}
}

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "Go.md", "# Go")

	raw, issues, err := LoadFile(root, "Skills/Go.md")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if raw != "# Go" {
		t.Errorf("raw = %q", raw)
	}
	if len(issues) != 2 {
		t.Errorf("issues = %v, want heading violation and newline fixup", issues)
	}
}

func TestSectionName(t *testing.T) {
	if got := SectionName("Skills/JavaScript.md"); got != "JavaScript" {
		t.Errorf("SectionName() = %q", got)
	}
}
