// Package diff parses textual unified diffs into structured per-file change
// records. Only structural metadata is extracted (paths, hunk line ranges,
// permissions, blob revisions); hunk body content is ignored.
package diff

import (
	"github.com/deltalint/deltalint/internal/lines"
)

// FileDelta is the change record for one file in a unified diff.
//
// An empty FromPath means the file did not exist before the change; an empty
// ToPath means it no longer exists after it.
type FileDelta struct {
	FromPath string
	ToPath   string

	// Changed line intervals on each side, in diff order.
	FromChanges []lines.Interval
	ToChanges   []lines.Interval

	// Optional metadata from mode and index header lines.
	FromPermissions string
	ToPermissions   string
	FromRevision    string
	ToRevision      string
}

// IsRename reports whether the delta renames a file: both paths present and
// different.
func (d *FileDelta) IsRename() bool {
	return d.FromPath != "" && d.ToPath != "" && d.FromPath != d.ToPath
}

// IsAddition reports whether the delta creates a file.
func (d *FileDelta) IsAddition() bool {
	return d.FromPath == ""
}

// IsDeletion reports whether the delta removes a file.
func (d *FileDelta) IsDeletion() bool {
	return d.ToPath == ""
}

// ToFilter builds the line filter scoping a tool's diagnostics to the lines
// this delta touched on the post-change side.
func (d *FileDelta) ToFilter() lines.FileFilter {
	f := lines.FileFilter{Name: d.ToPath}
	f.Lines = append(f.Lines, d.ToChanges...)
	return f
}
