package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deltalint/deltalint/internal/lines"
)

// zeroRevisionPrefix is the abbreviated all-zero object hash git emits on
// the `index` line for a file with no prior blob.
const zeroRevisionPrefix = "0000000"

// devNull is the path git uses for the absent side of an add or delete.
const devNull = "/dev/null"

// ParseError reports a structurally malformed diff line. It is recoverable
// and distinct from a check failure: callers surface it as a parse problem
// rather than a failing file.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed diff line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a unified diff into one FileDelta per `diff --git` header.
//
// The input is processed as a line-oriented state machine. Lines that carry
// structural metadata (`diff --git`, `---`, `+++`, `@@`, `index`, and the
// file-mode headers) mutate an in-progress delta; every other line is hunk
// body or context and is skipped. The in-progress delta is finalized when
// the next `diff --git` header appears or the input ends.
func Parse(text string) ([]FileDelta, error) {
	var result []FileDelta
	var current *FileDelta

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			if current != nil {
				result = append(result, *current)
			}
			current = &FileDelta{}
			fields := strings.Fields(line)
			if len(fields) >= 4 {
				// Tentative: overwritten by ---/+++ when present.
				current.FromPath = stripPathPrefix(fields[2])
				current.ToPath = stripPathPrefix(fields[3])
			}

		case current == nil:
			// Preamble before the first file header.
			continue

		case strings.HasPrefix(line, "--- "):
			current.FromPath = parsePathHeader(line[4:])

		case strings.HasPrefix(line, "+++ "):
			current.ToPath = parsePathHeader(line[4:])

		case strings.HasPrefix(line, "@@ "):
			if err := parseHunkHeader(line, current); err != nil {
				return nil, err
			}

		case strings.HasPrefix(line, "index "):
			parseIndexLine(line, current)

		case strings.HasPrefix(line, "old file mode "):
			current.FromPermissions = strings.TrimSpace(line[len("old file mode "):])

		case strings.HasPrefix(line, "new file mode "):
			current.ToPermissions = strings.TrimSpace(line[len("new file mode "):])

		case strings.HasPrefix(line, "deleted file mode "):
			current.FromPermissions = strings.TrimSpace(line[len("deleted file mode "):])
		}
	}

	if current != nil {
		result = append(result, *current)
	}
	return result, nil
}

// parsePathHeader extracts the path from a `---`/`+++` header, mapping
// /dev/null to the empty (absent) path.
func parsePathHeader(rest string) string {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	p := fields[0]
	if p == devNull {
		return ""
	}
	return stripPathPrefix(p)
}

// stripPathPrefix removes the a/ and b/ prefixes git adds unless invoked
// with --no-prefix.
func stripPathPrefix(p string) string {
	if strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
		return p[2:]
	}
	return p
}

// parseHunkHeader decodes `@@ -s1[,l1] +s2[,l2] @@ ...` and appends the
// resulting intervals to the delta. A malformed numeric field produces a
// ParseError rather than a panic.
func parseHunkHeader(line string, d *FileDelta) error {
	// `@@ -s1[,l1] +s2[,l2] @@` plus an optional trailing section heading.
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[3] != "@@" {
		return &ParseError{Line: line, Err: fmt.Errorf("expected '@@ -a[,b] +c[,d] @@', got %d fields", len(fields))}
	}

	from, err := parseRangeSpec(fields[1], "-")
	if err != nil {
		return &ParseError{Line: line, Err: err}
	}
	to, err := parseRangeSpec(fields[2], "+")
	if err != nil {
		return &ParseError{Line: line, Err: err}
	}

	if iv, ok := lines.FromHunkRange(from.start, from.length, from.hasLength); ok {
		d.FromChanges = append(d.FromChanges, iv)
	}
	if iv, ok := lines.FromHunkRange(to.start, to.length, to.hasLength); ok {
		d.ToChanges = append(d.ToChanges, iv)
	}
	return nil
}

type rangeSpec struct {
	start     int
	length    int
	hasLength bool
}

func parseRangeSpec(spec, sign string) (rangeSpec, error) {
	if !strings.HasPrefix(spec, sign) {
		return rangeSpec{}, fmt.Errorf("range spec %q does not start with %q", spec, sign)
	}
	parts := strings.Split(spec[1:], ",")
	if len(parts) > 2 {
		return rangeSpec{}, fmt.Errorf("range spec %q has too many components", spec)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return rangeSpec{}, fmt.Errorf("range start %q: %w", parts[0], err)
	}
	rs := rangeSpec{start: start}
	if len(parts) == 2 {
		length, err := strconv.Atoi(parts[1])
		if err != nil {
			return rangeSpec{}, fmt.Errorf("range length %q: %w", parts[1], err)
		}
		rs.length = length
		rs.hasLength = true
	}
	return rs, nil
}

// parseIndexLine decodes `index <old>..<new>[ <mode>]`. The mode token, when
// present, applies to both sides. An all-zero old hash is the only reliable
// signal that an empty file was added: git omits the ---/+++ pair for those,
// so the delta is reclassified as an addition here.
func parseIndexLine(line string, d *FileDelta) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return
	}
	if len(fields) == 3 {
		d.FromPermissions = fields[2]
		d.ToPermissions = fields[2]
	}

	revisions := strings.SplitN(fields[1], "..", 2)
	if len(revisions) != 2 {
		return
	}
	d.FromRevision = revisions[0]
	d.ToRevision = revisions[1]

	if strings.HasPrefix(d.FromRevision, zeroRevisionPrefix) {
		d.FromPath = ""
		d.FromPermissions = ""
		d.FromRevision = ""
	}
}
