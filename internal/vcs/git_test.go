package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temp git repo with a committed file and returns
// its path.
func setupTestRepo(t *testing.T) string {
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

	os.WriteFile(filepath.Join(dir, "main.cpp"), []byte("int main()\n{\n  return 0;\n}\n"), 0o644)
	run("git", "add", "-A")
	run("git", "commit", "-m", "init")

	return dir
}

func newTestGit(t *testing.T, dir string) *Git {
	t.Helper()
	g, err := New(Options{Dir: dir})
	require.NoError(t, err)
	return g
}

func TestNew_MissingProgram(t *testing.T) {
	_, err := New(Options{Program: "definitely-not-a-real-git-binary"})
	require.Error(t, err)
}

func TestRepoRoot(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	root, err := g.RepoRoot()
	require.NoError(t, err)

	// t.TempDir may sit behind a symlink (macOS /var -> /private/var), so
	// compare resolved paths.
	wantRoot, _ := filepath.EvalSymlinks(dir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestDiff_UnstagedChange(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	path := filepath.Join(dir, "main.cpp")
	os.WriteFile(path, []byte("int main()\n{\n  return 1;\n}\n"), 0o644)

	deltas, err := g.Diff(DiffOptions{Files: []string{path}})
	require.NoError(t, err)
	require.Len(t, deltas, 1)

	d := deltas[0]
	assert.Equal(t, "main.cpp", d.ToPath)
	assert.False(t, d.IsAddition())
	require.NotEmpty(t, d.ToChanges)
	assert.True(t, d.ToChanges[0].Contains(3), "changed line 3 should be inside %v", d.ToChanges[0])
}

func TestDiff_NoChanges(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	deltas, err := g.Diff(DiffOptions{})
	require.NoError(t, err)
	assert.Empty(t, deltas)
}

func TestDiff_StagedOnly(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	path := filepath.Join(dir, "staged.txt")
	os.WriteFile(path, []byte("hello\n"), 0o644)

	cmd := exec.Command("git", "add", "staged.txt")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	unstaged, err := g.Diff(DiffOptions{})
	require.NoError(t, err)
	assert.Empty(t, unstaged)

	staged, err := g.Diff(DiffOptions{Staged: true})
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.True(t, staged[0].IsAddition())
	assert.Equal(t, "staged.txt", staged[0].ToPath)
}

func TestChangedFiles(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	os.WriteFile(filepath.Join(dir, "main.cpp"), []byte("int main() { return 2; }\n"), 0o644)

	files, err := g.ChangedFiles(false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "main.cpp"), files[0])
	assert.True(t, filepath.IsAbs(files[0]))
}

func TestChangedFiles_Staged(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x\n"), 0o644)
	cmd := exec.Command("git", "add", "new.txt")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	files, err := g.ChangedFiles(true)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.txt", filepath.Base(files[0]))
}

func TestShowFile_Head(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	// Modify the work tree; HEAD content must be the committed version.
	path := filepath.Join(dir, "main.cpp")
	os.WriteFile(path, []byte("changed\n"), 0o644)

	content, err := g.ShowFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "int main()\n{\n  return 0;\n}\n", content)
}

func TestShowStagedFile(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	path := filepath.Join(dir, "main.cpp")
	os.WriteFile(path, []byte("staged content\n"), 0o644)
	cmd := exec.Command("git", "add", "main.cpp")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	// Another unstaged edit on top; the staged copy must win.
	os.WriteFile(path, []byte("worktree content\n"), 0o644)

	content, err := g.ShowStagedFile(path)
	require.NoError(t, err)
	assert.Equal(t, "staged content\n", content)
}

func TestIsTracked(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	assert.True(t, g.IsTracked(filepath.Join(dir, "main.cpp")))

	os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x\n"), 0o644)
	assert.False(t, g.IsTracked(filepath.Join(dir, "untracked.txt")))
}

func TestYearsModified(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	years, err := g.YearsModified(filepath.Join(dir, "main.cpp"))
	require.NoError(t, err)
	require.Len(t, years, 1)
	assert.GreaterOrEqual(t, years[0], 2020)
}

func TestYearsModified_Untracked(t *testing.T) {
	dir := setupTestRepo(t)
	g := newTestGit(t, dir)

	years, err := g.YearsModified(filepath.Join(dir, "nope.txt"))
	require.NoError(t, err)
	assert.Empty(t, years)
}
