package check

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/deltalint/deltalint/internal/vcs"
)

// YearRange is a run of consecutive copyright years. End is zero for a
// single year.
type YearRange struct {
	Start int
	End   int
}

func (r YearRange) String() string {
	if r.End == 0 {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// CoalesceYears sorts the given years and folds consecutive runs into
// ranges: [2019, 2020, 2021, 2023] becomes "2019-2021, 2023". Single years
// render bare with no dash.
func CoalesceYears(years []int) []YearRange {
	if len(years) == 0 {
		return nil
	}
	sorted := append([]int{}, years...)
	sort.Ints(sorted)

	var result []YearRange
	current := YearRange{Start: sorted[0]}
	previous := sorted[0]
	for _, year := range sorted[1:] {
		if year == previous {
			continue
		}
		if year == previous+1 {
			current.End = year
		} else {
			result = append(result, current)
			current = YearRange{Start: year}
		}
		previous = year
	}
	return append(result, current)
}

// FormatYearRanges joins ranges with ", " for comparison against the
// statement found in a file header.
func FormatYearRanges(ranges []YearRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

// CopyrightYears verifies that a file's copyright statement lists exactly
// the years the file was modified per version control, plus the current
// year, with consecutive years coalesced into ranges. Fixes rewrite the
// year list in place.
type CopyrightYears struct {
	CLIMeta
	source  ReadSource
	git     *vcs.Git
	pattern *regexp.Regexp
	now     func() time.Time
}

// NewCopyrightYears builds the check. The pattern must capture the year
// list in its first group, e.g.
// `Copyright \(c\) (.*) Example Author All rights reserved\.`.
func NewCopyrightYears(source ReadSource, git *vcs.Git, pattern string) (*CopyrightYears, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling copyright pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("copyright pattern %q must capture the year list", pattern)
	}
	if source == nil {
		source = ReadWorkTree
	}
	return &CopyrightYears{
		CLIMeta: CLIMeta{Label: "copyright license"},
		source:  source,
		git:     git,
		pattern: re,
		now:     time.Now,
	}, nil
}

func (c *CopyrightYears) Verify(file string) Result {
	expected, err := c.expectedYears(file)
	if err != nil {
		return Fail("%v", err)
	}

	content, err := c.source(file)
	if err != nil {
		return Fail("reading %s: %v", file, err)
	}

	var stderr strings.Builder
	discovered := 0
	for n, line := range strings.Split(content, "\n") {
		match := c.pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if discovered > 0 {
			fmt.Fprintf(&stderr, "%s:%d: multiple copyright statements found\n", file, n+1)
		}
		discovered++

		if match[1] != expected {
			fmt.Fprintf(&stderr, "%s:%d: expected %q, found %q\n", file, n+1, expected, match[1])
			return Result{Stderr: stderr.String()}
		}
	}

	return Result{Passed: discovered <= 1 && stderr.Len() == 0, Stderr: stderr.String()}
}

func (c *CopyrightYears) Fix(file string) Result {
	expected, err := c.expectedYears(file)
	if err != nil {
		return Fail("%v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return Fail("reading %s: %v", file, err)
	}
	info, err := os.Stat(file)
	if err != nil {
		return Fail("stat %s: %v", file, err)
	}

	fileLines := strings.Split(string(data), "\n")
	for i, line := range fileLines {
		match := c.pattern.FindStringSubmatch(line)
		if match == nil || match[1] == expected {
			continue
		}
		fileLines[i] = strings.Replace(line, match[1], expected, 1)
	}

	if err := os.WriteFile(file, []byte(strings.Join(fileLines, "\n")), info.Mode()); err != nil {
		return Fail("writing %s: %v", file, err)
	}
	return Pass()
}

// expectedYears computes the canonical year list for a file: every year
// with a commit touching it plus the current year, so verify and fix agree
// on what a conforming statement looks like.
func (c *CopyrightYears) expectedYears(file string) (string, error) {
	years, err := c.git.YearsModified(file)
	if err != nil {
		return "", fmt.Errorf("querying modification years for %s: %w", file, err)
	}
	years = append(years, c.now().Year())
	return FormatYearRanges(CoalesceYears(years)), nil
}
