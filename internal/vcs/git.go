// Package vcs wraps the git binary behind the small query surface the check
// pipeline needs: changed-file lists, structured diffs, and historical or
// staged file content.
//
// The working directory is explicit configuration on the Git value rather
// than ambient process state, so concurrent callers never race on a global
// chdir.
package vcs

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/deltalint/deltalint/internal/diff"
)

// Git runs git commands against one repository.
type Git struct {
	exe string
	dir string
}

// Options configures a Git instance.
type Options struct {
	// Program is the git executable name or path. Defaults to "git",
	// resolved through PATH.
	Program string

	// Dir is the repository directory commands run in. Empty means the
	// process working directory.
	Dir string
}

// New resolves the git executable and returns a Git bound to opts.Dir.
func New(opts Options) (*Git, error) {
	program := opts.Program
	if program == "" {
		program = "git"
	}
	exe, err := exec.LookPath(program)
	if err != nil {
		return nil, fmt.Errorf("locating git executable %q: %w", program, err)
	}

	dir := opts.Dir
	if dir != "" {
		dir, err = filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving repository dir %q: %w", opts.Dir, err)
		}
	}
	return &Git{exe: exe, dir: dir}, nil
}

// Dir returns the repository directory this instance is bound to.
func (g *Git) Dir() string { return g.dir }

// RepoRoot returns the absolute path of the repository's top-level directory.
func (g *Git) RepoRoot() (string, error) {
	out, err := g.run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// DiffOptions controls how Diff gathers changes.
type DiffOptions struct {
	// Files restricts the diff to the given paths. Nil means all changes.
	Files []string

	// Staged diffs the index against HEAD instead of the work tree
	// against the index.
	Staged bool

	// ContextLines is the number of unchanged lines around each hunk.
	ContextLines int

	// Commitish optionally diffs against a specific revision or range.
	Commitish string
}

// Diff computes the structured deltas for the requested paths.
func (g *Git) Diff(opts DiffOptions) ([]diff.FileDelta, error) {
	args := []string{
		"diff",
		fmt.Sprintf("--unified=%d", opts.ContextLines),
		"--no-color",
		"--no-color-moved",
		"--no-color-moved-ws",
		"--no-prefix",
	}
	if opts.Staged {
		args = append(args, "--cached")
	}
	if opts.Commitish != "" {
		args = append(args, opts.Commitish)
	}
	if opts.Files != nil {
		args = append(args, "--")
		for _, f := range opts.Files {
			args = append(args, g.relative(f))
		}
	}

	out, err := g.run(args...)
	if err != nil {
		return nil, err
	}
	return diff.Parse(out)
}

// ChangedFiles lists the paths changed in the work tree, or in the index
// when staged is true. Deleted files are excluded: there is nothing left on
// disk for a check to run against.
func (g *Git) ChangedFiles(staged bool) ([]string, error) {
	args := []string{"diff", "--name-only", "--diff-filter=d"}
	if staged {
		args = append(args, "--cached")
	}

	out, err := g.run(args...)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		if g.dir != "" {
			line = filepath.Join(g.dir, line)
		}
		files = append(files, line)
	}
	return files, nil
}

// ShowFile returns the content of path at the given revision. An empty
// revision means HEAD.
func (g *Git) ShowFile(path, revision string) (string, error) {
	if revision == "" {
		revision = "HEAD"
	}
	return g.run("show", fmt.Sprintf("%s:%s", revision, g.relative(path)))
}

// ShowStagedFile returns the staged (index) content of path.
func (g *Git) ShowStagedFile(path string) (string, error) {
	return g.run("show", ":"+g.relative(path))
}

// IsTracked reports whether path is tracked by git.
func (g *Git) IsTracked(path string) bool {
	_, err := g.run("ls-files", "--error-unmatch", g.relative(path))
	return err == nil
}

// YearsModified returns the distinct years in which path was modified,
// ordered from most recent commit to oldest.
func (g *Git) YearsModified(path string) ([]int, error) {
	out, err := g.run(
		"log",
		"--date=format:%Y",
		"--pretty=%ad",
		"--follow",
		"--no-show-signature",
		"--",
		g.relative(path),
	)
	if err != nil {
		return nil, err
	}

	var years []int
	seen := make(map[int]bool)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var year int
		if _, err := fmt.Sscanf(line, "%d", &year); err != nil {
			return nil, fmt.Errorf("unexpected git log date %q: %w", line, err)
		}
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	return years, nil
}

// relative maps an absolute path inside the repository to a repo-relative
// one, which keeps git path arguments valid regardless of the caller's
// working directory.
func (g *Git) relative(path string) string {
	if g.dir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(g.dir, path)
	if err != nil {
		return path
	}
	return rel
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command(g.exe, args...)
	cmd.Dir = g.dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug().Str("dir", g.dir).Strs("args", args).Msg("running git")

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
