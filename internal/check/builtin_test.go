package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTrailingNewline_Verify(t *testing.T) {
	c := NewTrailingNewline(nil)

	good := writeTemp(t, "hello\nworld\n")
	assert.True(t, c.Verify(good).Passed)

	bad := writeTemp(t, "hello\nworld")
	assert.False(t, c.Verify(bad).Passed)
}

func TestTrailingNewline_Fix(t *testing.T) {
	c := NewTrailingNewline(nil)
	path := writeTemp(t, "no newline")

	r := c.Fix(path)
	require.True(t, r.Passed)

	data, _ := os.ReadFile(path)
	assert.Equal(t, "no newline\n", string(data))

	// After fixing, verification passes.
	assert.True(t, c.Verify(path).Passed)
}

func TestTrailingNewline_CustomSource(t *testing.T) {
	// Validating staged content means reading through the source hook, not
	// the work tree.
	c := NewTrailingNewline(func(string) (string, error) {
		return "staged version\n", nil
	})
	path := writeTemp(t, "worktree without newline")
	assert.True(t, c.Verify(path).Passed)
}

func TestTrailingWhitespace_Verify(t *testing.T) {
	c := NewTrailingWhitespace(nil)

	good := writeTemp(t, "clean line\n\tindented\n")
	assert.True(t, c.Verify(good).Passed)

	bad := writeTemp(t, "clean\ntrailing  \nmore\ttabs\t\n")
	r := c.Verify(bad)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Stderr, ":2: trailing whitespace detected")
	assert.Contains(t, r.Stderr, ":3: trailing whitespace detected")
}

func TestTrailingWhitespace_Fix(t *testing.T) {
	c := NewTrailingWhitespace(nil)
	path := writeTemp(t, "one \ntwo\t\nthree\n")

	r := c.Fix(path)
	require.True(t, r.Passed)

	data, _ := os.ReadFile(path)
	assert.Equal(t, "one\ntwo\nthree\n", string(data))
	assert.True(t, c.Verify(path).Passed)
}

func TestTrailingWhitespace_FixKeepsMode(t *testing.T) {
	c := NewTrailingWhitespace(nil)
	path := writeTemp(t, "executable \n")
	require.NoError(t, os.Chmod(path, 0o755))

	require.True(t, c.Fix(path).Passed)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
