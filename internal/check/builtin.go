package check

import (
	"fmt"
	"os"
	"strings"
)

// TrailingNewline verifies that a file's last line is terminated by a
// newline, and can repair it by appending one.
type TrailingNewline struct {
	CLIMeta
	source ReadSource
}

// NewTrailingNewline builds the check. A nil source reads the work tree.
func NewTrailingNewline(source ReadSource) *TrailingNewline {
	if source == nil {
		source = ReadWorkTree
	}
	return &TrailingNewline{
		CLIMeta: CLIMeta{Label: "trailing newline"},
		source:  source,
	}
}

func (c *TrailingNewline) Verify(file string) Result {
	content, err := c.source(file)
	if err != nil {
		return Fail("reading %s: %v", file, err)
	}
	if strings.HasSuffix(content, "\n") {
		return Pass()
	}
	return Fail("%s: missing trailing newline", file)
}

func (c *TrailingNewline) Fix(file string) Result {
	f, err := os.OpenFile(file, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return Fail("opening %s: %v", file, err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n"); err != nil {
		return Fail("appending newline to %s: %v", file, err)
	}
	return Pass()
}

// TrailingWhitespace verifies that no line carries trailing spaces or tabs,
// and can repair a file by stripping them in place.
type TrailingWhitespace struct {
	CLIMeta
	source ReadSource
}

// NewTrailingWhitespace builds the check. A nil source reads the work tree.
func NewTrailingWhitespace(source ReadSource) *TrailingWhitespace {
	if source == nil {
		source = ReadWorkTree
	}
	return &TrailingWhitespace{
		CLIMeta: CLIMeta{Label: "whitespace"},
		source:  source,
	}
}

func (c *TrailingWhitespace) Verify(file string) Result {
	content, err := c.source(file)
	if err != nil {
		return Fail("reading %s: %v", file, err)
	}

	var stderr strings.Builder
	for n, line := range strings.Split(content, "\n") {
		if strings.TrimRight(line, " \t\r") != line {
			fmt.Fprintf(&stderr, "%s:%d: trailing whitespace detected\n", file, n+1)
		}
	}

	if stderr.Len() > 0 {
		return Result{Stderr: stderr.String()}
	}
	return Pass()
}

func (c *TrailingWhitespace) Fix(file string) Result {
	info, err := os.Stat(file)
	if err != nil {
		return Fail("stat %s: %v", file, err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return Fail("reading %s: %v", file, err)
	}

	lineSlice := strings.Split(string(data), "\n")
	for i, line := range lineSlice {
		lineSlice[i] = strings.TrimRight(line, " \t\r")
	}
	fixed := strings.Join(lineSlice, "\n")

	if err := os.WriteFile(file, []byte(fixed), info.Mode()); err != nil {
		return Fail("writing %s: %v", file, err)
	}
	return Pass()
}
