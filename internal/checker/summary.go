package checker

import "github.com/andywolf/skillcheck/internal/skillfile"

// FileResult is the outcome of checking one skill file.
type FileResult struct {
	Path       string
	Contract   []skillfile.Issue
	Result     *skillfile.Result
	Rewritten  bool
	SizeBefore int
	SizeAfter  int
}

// Issues returns contract issues followed by line issues.
func (f *FileResult) Issues() []skillfile.Issue {
	issues := make([]skillfile.Issue, 0, len(f.Contract)+len(f.Result.Violations)+len(f.Result.Fixups))
	issues = append(issues, f.Contract...)
	return append(issues, f.Result.Issues()...)
}

// Failed reports whether the file has any hard violation.
func (f *FileResult) Failed() bool {
	return skillfile.HasViolations(f.Contract) || len(f.Result.Violations) > 0
}

// Summary aggregates a run. It replaces a process-wide failure flag.
type Summary struct {
	Files []*FileResult
}

// Failed reports whether any file has a hard violation.
func (s *Summary) Failed() bool {
	for _, f := range s.Files {
		if f.Failed() {
			return true
		}
	}
	return false
}

// Skills returns the number of skills across all files.
func (s *Summary) Skills() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Result.Skills)
	}
	return n
}

// Violations returns the number of hard violations across all files.
func (s *Summary) Violations() int {
	n := 0
	for _, f := range s.Files {
		for _, issue := range f.Issues() {
			if issue.IsViolation() {
				n++
			}
		}
	}
	return n
}

// Fixups returns the number of repaired deviations across all files.
func (s *Summary) Fixups() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Issues())
	}
	return n - s.Violations()
}

// Rewritten returns the paths persisted in canonical form.
func (s *Summary) Rewritten() []string {
	var files []string
	for _, f := range s.Files {
		if f.Rewritten {
			files = append(files, f.Path)
		}
	}
	return files
}
