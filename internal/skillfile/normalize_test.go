package skillfile

import (
	"reflect"
	"strings"
	"testing"
)

func labels(r *Result) []string {
	out := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		out = append(out, s.Label)
	}
	return out
}

func TestNormalize_Example(t *testing.T) {
	input := "## Title\n" +
		"\n" +
		"- Languages\n" +
		"  - Python\n" +
		"  - Python\n" +
		"- Tools\n" +
		"\n" +
		"  - Git\n"
	want := "## Title\n" +
		"\n" +
		"- Languages\n" +
		"  - Python\n" +
		"- Tools\n" +
		"  - Git\n"

	result := Normalize("Skills/Example.md", input)

	if result.Canonical != want {
		t.Errorf("Canonical =\n%q\nwant\n%q", result.Canonical, want)
	}
	if len(result.Violations) != 0 {
		t.Errorf("Violations = %v, want none", result.Violations)
	}
	wantFixups := []Issue{
		{Severity: SeverityFixup, Message: "removed duplicate skill «Python» at line 5", Line: 5},
		{Severity: SeverityFixup, Message: "removed empty line at line 7", Line: 7},
	}
	if !reflect.DeepEqual(result.Fixups, wantFixups) {
		t.Errorf("Fixups = %v, want %v", result.Fixups, wantFixups)
	}
	if got := labels(result); !reflect.DeepEqual(got, []string{"Python", "Git"}) {
		t.Errorf("labels = %v, want [Python Git]", got)
	}
	if result.Skills[1].Section != "Tools" {
		t.Errorf("Skills[1].Section = %q, want Tools", result.Skills[1].Section)
	}
	if !result.Changed(input) {
		t.Error("Changed() = false, want true")
	}
}

func TestNormalize_UnknownStructure(t *testing.T) {
	input := "## Title\n" +
		"\n" +
		"- Tools\n" +
		"  - Git\n" +
		"* Bad Item\n" +
		"  - Make\n"

	result := Normalize("Skills/Tools.md", input)

	want := []Issue{{Severity: SeverityViolation, Message: "unknown structure at line 5", Line: 5}}
	if !reflect.DeepEqual(result.Violations, want) {
		t.Errorf("Violations = %v, want %v", result.Violations, want)
	}
	if strings.Contains(result.Canonical, "Bad Item") {
		t.Errorf("unrecognized line kept in output:\n%s", result.Canonical)
	}
	if got := labels(result); !reflect.DeepEqual(got, []string{"Git", "Make"}) {
		t.Errorf("labels = %v, want [Git Make]", got)
	}
}

func TestNormalize_MissingTrailingNewline(t *testing.T) {
	input := "## Title\n\n- Tools\n  - Git"

	result := Normalize("Skills/Tools.md", input)

	if result.Canonical != input+"\n" {
		t.Errorf("Canonical = %q, want %q", result.Canonical, input+"\n")
	}
	if len(result.Issues()) != 0 {
		t.Errorf("Issues() = %v, want none", result.Issues())
	}
	if !result.Changed(input) {
		t.Error("Changed() = false, want true")
	}
	if len(result.Skills) != 1 {
		t.Errorf("got %d skills, want 1", len(result.Skills))
	}
}

func TestNormalize_DuplicatesArePerSection(t *testing.T) {
	input := "## Title\n" +
		"- Backend\n" +
		"  - Docker\n" +
		"- Frontend\n" +
		"  - Docker\n" +
		"  - Docker\n"

	result := Normalize("Skills/Ops.md", input)

	if got := labels(result); !reflect.DeepEqual(got, []string{"Docker", "Docker"}) {
		t.Errorf("labels = %v, want [Docker Docker]", got)
	}
	if len(result.Fixups) != 1 || result.Fixups[0].Line != 6 {
		t.Errorf("Fixups = %v, want one duplicate at line 6", result.Fixups)
	}
}

func TestNormalize_BlankLines(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		fixupLines []int
	}{
		{
			name:       "leading blanks keep the first",
			input:      "## Title\n\n\n\n- A\n  - x\n",
			want:       "## Title\n\n- A\n  - x\n",
			fixupLines: []int{3, 4},
		},
		{
			name:       "blank inside section removed",
			input:      "## Title\n- A\n\n  - x\n\n- B\n  - y\n",
			want:       "## Title\n- A\n  - x\n- B\n  - y\n",
			fixupLines: []int{3, 5},
		},
		{
			name:       "whitespace-only line is blank",
			input:      "## Title\n   \n- A\n  - x\n",
			want:       "## Title\n\n- A\n  - x\n",
			fixupLines: nil,
		},
		{
			name:       "trailing blanks trimmed",
			input:      "## Title\n\n\n",
			want:       "## Title\n",
			fixupLines: []int{2, 3},
		},
		{
			name:       "dropped line does not split a blank run",
			input:      "## Title\n\noops\n\n- A\n",
			want:       "## Title\n\n- A\n",
			fixupLines: []int{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize("Skills/Test.md", tt.input)
			if result.Canonical != tt.want {
				t.Errorf("Canonical = %q, want %q", result.Canonical, tt.want)
			}
			var lines []int
			for _, f := range result.Fixups {
				lines = append(lines, f.Line)
			}
			if !reflect.DeepEqual(lines, tt.fixupLines) {
				t.Errorf("fixup lines = %v, want %v", lines, tt.fixupLines)
			}
		})
	}
}

func TestNormalize_CanonicalForm(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"\n\n\n",
		"## Title",
		"## Title\r\n\r\n- A\r\n  - x\r\n  - x\r\n",
		"## Title\r- A\r  - x\r",
		"## Title\n\n\n- A\n\n\n  - x\n  -   y  \n* z\n",
		"no heading\n  - orphan\n",
		"## Title\n- \n  -\n",
		"## T\n\n* bad\n\n- A\n",
		"## Title\n- \n\n  - x\n",
	}

	for _, input := range inputs {
		first := Normalize("Skills/Test.md", input)
		if strings.Contains(first.Canonical, "\r") {
			t.Errorf("Normalize(%q) kept a carriage return: %q", input, first.Canonical)
		}
		if !strings.HasSuffix(first.Canonical, "\n") || strings.HasSuffix(first.Canonical, "\n\n") {
			t.Errorf("Normalize(%q) = %q, want exactly one trailing line feed", input, first.Canonical)
		}

		second := Normalize("Skills/Test.md", first.Canonical)
		if second.Canonical != first.Canonical {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, first.Canonical, second.Canonical)
		}
		if len(second.Fixups) != 0 || len(second.Violations) != 0 {
			t.Errorf("second pass over %q reported %v", first.Canonical, second.Issues())
		}
		if second.Changed(first.Canonical) {
			t.Errorf("canonical text %q reported as changed", first.Canonical)
		}
	}
}

func TestNormalize_CRLF(t *testing.T) {
	input := "## Title\r\n\r\n- Tools\r\n  - Git\r\n"

	result := Normalize("Skills/Tools.md", input)

	want := "## Title\n\n- Tools\n  - Git\n"
	if result.Canonical != want {
		t.Errorf("Canonical = %q, want %q", result.Canonical, want)
	}
	if len(result.Issues()) != 0 {
		t.Errorf("Issues() = %v, want none", result.Issues())
	}
}

func TestNormalize_SkillLabelCanonicalized(t *testing.T) {
	result := Normalize("Skills/Tools.md", "## Title\n- Tools\n  -Git   \n")

	if result.Canonical != "## Title\n- Tools\n  - Git\n" {
		t.Errorf("Canonical = %q", result.Canonical)
	}
	if result.Skills[0].Line != 3 {
		t.Errorf("Skills[0].Line = %d, want 3", result.Skills[0].Line)
	}
}
