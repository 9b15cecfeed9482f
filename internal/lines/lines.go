// Package lines models closed 1-based line intervals and the per-file
// line filters that scope an external tool's diagnostics to changed regions.
//
// Both the diff parser and the check-invocation path depend on this package,
// so it stays free of dependencies on either.
package lines

import (
	"fmt"
	"strings"
)

// Interval is a closed interval [Start, End] of 1-based line numbers.
type Interval struct {
	Start int
	End   int
}

// Single returns the interval covering exactly one line.
func Single(line int) Interval {
	return Interval{Start: line, End: line}
}

// Closed returns the interval [start, end].
func Closed(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// FromHunkRange builds an interval from a diff hunk range spec (`-s,l` or
// `+s,l`). When the spec omits the length component (hasLength false) the
// interval is the single line [start, start]. An explicit length of zero
// means no lines survive on that side of the hunk, so no interval is
// produced and ok is false.
func FromHunkRange(start, length int, hasLength bool) (Interval, bool) {
	if !hasLength {
		return Single(start), true
	}
	if length == 0 {
		return Interval{}, false
	}
	// end = start + length, matching the arithmetic the line-filter
	// consumers expect for hunk ranges.
	return Closed(start, start+length), true
}

// String renders the interval as "[start, end]".
func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d]", i.Start, i.End)
}

// Contains reports whether the 1-based line falls inside the interval.
func (i Interval) Contains(line int) bool {
	return line >= i.Start && line <= i.End
}

// FileFilter pairs a file with the set of intervals a tool should restrict
// its diagnostics to.
type FileFilter struct {
	Name  string
	Lines []Interval
}

// String serializes the filter to the JSON-like form consumed by
// line-filtering tools: {"name":"<file>","lines":[[s1,e1],[s2,e2]]}.
func (f FileFilter) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"name":%q,"lines":[`, f.Name)
	for n, iv := range f.Lines {
		if n > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "[%d,%d]", iv.Start, iv.End)
	}
	b.WriteString("]}")
	return b.String()
}

// FormatFilters serializes a set of file filters into the single bracketed
// argument form: [{"name":...},{"name":...}].
func FormatFilters(filters []FileFilter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}
