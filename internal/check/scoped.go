package check

import (
	"github.com/deltalint/deltalint/internal/lines"
	"github.com/deltalint/deltalint/internal/vcs"
)

// LineScoped is a process-backed check whose diagnostics can be restricted
// to a set of per-file line intervals.
type LineScoped interface {
	Check
	RunScoped(file string, filters []lines.FileFilter, fix bool) Result
}

// DiffScoped composes the version-control collaborator with a line-scoped
// tool: it computes a file's changed intervals before each invocation so the
// underlying tool only reports findings inside the edited region.
type DiffScoped struct {
	tool   LineScoped
	git    *vcs.Git
	staged bool

	// contextLines widens the scoped region slightly so diagnostics on
	// lines adjacent to an edit are still surfaced.
	contextLines int
}

// NewDiffScoped wraps tool so each invocation is scoped to the lines of file
// changed in the work tree (or the index when staged is true).
func NewDiffScoped(tool LineScoped, git *vcs.Git, staged bool, contextLines int) *DiffScoped {
	return &DiffScoped{tool: tool, git: git, staged: staged, contextLines: contextLines}
}

func (s *DiffScoped) Name() string           { return s.tool.Name() }
func (s *DiffScoped) Command() []string      { return s.tool.Command() }
func (s *DiffScoped) VerboseFlags() []string { return s.tool.VerboseFlags() }
func (s *DiffScoped) FixFlags() []string     { return s.tool.FixFlags() }

// Verify checks only the changed regions of file.
func (s *DiffScoped) Verify(file string) Result {
	return s.run(file, false)
}

// Fix repairs only the changed regions of file.
func (s *DiffScoped) Fix(file string) Result {
	return s.run(file, true)
}

func (s *DiffScoped) run(file string, fix bool) Result {
	deltas, err := s.git.Diff(vcs.DiffOptions{
		Files:        []string{file},
		Staged:       s.staged,
		ContextLines: s.contextLines,
	})
	if err != nil {
		return Fail("computing changed lines for %s: %v", file, err)
	}

	filters := make([]lines.FileFilter, 0, len(deltas))
	for i := range deltas {
		filters = append(filters, deltas[i].ToFilter())
	}
	return s.tool.RunScoped(file, filters, fix)
}
