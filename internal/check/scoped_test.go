package check

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltalint/deltalint/internal/lines"
	"github.com/deltalint/deltalint/internal/vcs"
)

// recordingTool captures the filters a DiffScoped wrapper hands to the
// underlying tool.
type recordingTool struct {
	CLIMeta
	filters []lines.FileFilter
	fix     bool
}

func (r *recordingTool) RunScoped(file string, filters []lines.FileFilter, fix bool) Result {
	r.filters = filters
	r.fix = fix
	return Pass()
}

func setupScopedRepo(t *testing.T) (string, *vcs.Git) {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	run("git", "init")
	run("git", "checkout", "-b", "main")
	os.WriteFile(filepath.Join(dir, "a.cpp"),
		[]byte("line1\nline2\nline3\nline4\nline5\n"), 0o644)
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")

	g, err := vcs.New(vcs.Options{Dir: dir})
	require.NoError(t, err)
	return dir, g
}

func TestDiffScoped_FiltersChangedLines(t *testing.T) {
	dir, g := setupScopedRepo(t)

	path := filepath.Join(dir, "a.cpp")
	os.WriteFile(path, []byte("line1\nline2\nCHANGED\nline4\nline5\n"), 0o644)

	tool := &recordingTool{CLIMeta: CLIMeta{Label: "fake"}}
	scoped := NewDiffScoped(tool, g, false, 0)

	r := scoped.Verify(path)
	require.True(t, r.Passed)
	require.Len(t, tool.filters, 1)
	assert.Equal(t, "a.cpp", tool.filters[0].Name)
	require.NotEmpty(t, tool.filters[0].Lines)
	assert.True(t, tool.filters[0].Lines[0].Contains(3),
		"changed line 3 should be inside %v", tool.filters[0].Lines[0])
	assert.False(t, tool.fix)
}

func TestDiffScoped_UnchangedFileHasEmptyFilters(t *testing.T) {
	dir, g := setupScopedRepo(t)

	tool := &recordingTool{CLIMeta: CLIMeta{Label: "fake"}}
	scoped := NewDiffScoped(tool, g, false, 0)

	r := scoped.Verify(filepath.Join(dir, "a.cpp"))
	require.True(t, r.Passed)
	assert.Empty(t, tool.filters)
}

func TestDiffScoped_FixForwardsFixFlag(t *testing.T) {
	dir, g := setupScopedRepo(t)

	path := filepath.Join(dir, "a.cpp")
	os.WriteFile(path, []byte("line1\nEDIT\nline3\nline4\nline5\n"), 0o644)

	tool := &recordingTool{CLIMeta: CLIMeta{Label: "fake"}}
	scoped := NewDiffScoped(tool, g, false, 0)

	scoped.Fix(path)
	assert.True(t, tool.fix)
}

func TestDiffScoped_DelegatesMeta(t *testing.T) {
	tool := &recordingTool{CLIMeta: CLIMeta{Label: "fake tool"}}
	scoped := NewDiffScoped(tool, nil, false, 0)
	assert.Equal(t, "fake tool", scoped.Name())
	assert.Equal(t, tool.VerboseFlags(), scoped.VerboseFlags())
	assert.Equal(t, tool.FixFlags(), scoped.FixFlags())
}

func TestNewCopyrightYears_BadPattern(t *testing.T) {
	_, err := NewCopyrightYears(nil, nil, "([")
	assert.Error(t, err)
}

func TestNewCopyrightYears_NoCaptureGroup(t *testing.T) {
	_, err := NewCopyrightYears(nil, nil, "Copyright .* All rights reserved")
	assert.Error(t, err)
}
