// Package sources selects the set of files a check runs over: every file
// in the repository, only staged or modified ones, or nothing beyond the
// explicitly named inputs.
package sources

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/deltalint/deltalint/internal/vcs"
)

// Group names a selectable set of repository files.
type Group int

const (
	// All selects every file under the repository root.
	All Group = iota
	// Staged selects files with staged changes.
	Staged
	// Modified selects files with unstaged changes.
	Modified
	// Input selects nothing; only explicitly named files run.
	Input
)

// GroupNames lists the accepted --source-group values.
var GroupNames = []string{"all", "staged", "modified", "input"}

func (g Group) String() string {
	switch g {
	case All:
		return "all"
	case Staged:
		return "staged"
	case Modified:
		return "modified"
	case Input:
		return "input"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// ParseGroup maps a flag value onto a Group.
func ParseGroup(s string) (Group, error) {
	switch s {
	case "all":
		return All, nil
	case "staged":
		return Staged, nil
	case "modified":
		return Modified, nil
	case "input":
		return Input, nil
	}
	return 0, fmt.Errorf("invalid source group %q (expected one of all, staged, modified, input)", s)
}

// Filter reports whether a path belongs in the selection.
type Filter func(path string) bool

// Find returns the group's files, filtered. Paths are absolute. Input
// always yields an empty list; callers append their positional arguments
// themselves.
func Find(g Group, git *vcs.Git, filter Filter) ([]string, error) {
	if filter == nil {
		filter = func(string) bool { return true }
	}

	switch g {
	case All:
		return findAll(git, filter)
	case Staged:
		return findChanged(git, true, filter)
	case Modified:
		return findChanged(git, false, filter)
	case Input:
		return nil, nil
	}
	return nil, fmt.Errorf("invalid source group value %d", int(g))
}

// FindWithExtensions filters the group down to files whose extension,
// including the leading dot, appears in extensions.
func FindWithExtensions(g Group, git *vcs.Git, extensions []string) ([]string, error) {
	return Find(g, git, func(path string) bool {
		ext := filepath.Ext(path)
		for _, want := range extensions {
			if ext == want {
				return true
			}
		}
		return false
	})
}

// ReadFile returns the content a check should inspect: the staged blob
// when staged is set, the work-tree file otherwise.
func ReadFile(path string, git *vcs.Git, staged bool) (string, error) {
	if staged {
		return git.ShowStagedFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func findChanged(git *vcs.Git, staged bool, filter Filter) ([]string, error) {
	changed, err := git.ChangedFiles(staged)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, path := range changed {
		if filter(path) {
			out = append(out, path)
		}
	}
	return out, nil
}

func findAll(git *vcs.Git, filter Filter) ([]string, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filter(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
