package check

import (
	"fmt"
	"os"
)

// ReadSource returns the content a check should validate for a file. It
// exists so checks can read the staged copy of a file instead of the work
// tree when validating the index.
type ReadSource func(file string) (string, error)

// ReadWorkTree reads the file from disk.
func ReadWorkTree(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClangFormat wraps the clang-format binary. Verification pipes the source
// through `clang-format --dry-run --Werror` so staged content can be
// validated without touching the work tree; fixes always rewrite the work
// tree with -i.
type ClangFormat struct {
	CLIMeta
	bin    Binary
	source ReadSource
}

// ClangFormatOptions configures a ClangFormat check.
type ClangFormatOptions struct {
	// Program overrides the binary name. Defaults to "clang-format".
	Program string

	// Source provides file content for verification. Defaults to reading
	// the work tree.
	Source ReadSource
}

// NewClangFormat resolves the binary.
func NewClangFormat(opts ClangFormatOptions) (*ClangFormat, error) {
	program := opts.Program
	if program == "" {
		program = "clang-format"
	}
	bin, err := FindBinary(program)
	if err != nil {
		return nil, fmt.Errorf("locating %s: %w", program, err)
	}

	source := opts.Source
	if source == nil {
		source = ReadWorkTree
	}
	return &ClangFormat{
		CLIMeta: CLIMeta{Label: "c++ codestyle"},
		bin:     bin,
		source:  source,
	}, nil
}

// Verify checks formatting without modifying the file.
func (c *ClangFormat) Verify(file string) Result {
	content, err := c.source(file)
	if err != nil {
		return Fail("reading %s: %v", file, err)
	}
	return c.bin.Exec(content,
		"--dry-run",
		"--Werror",
		"--assume-filename="+file,
	)
}

// Fix reformats the file in place.
func (c *ClangFormat) Fix(file string) Result {
	return c.bin.Exec("", "-i", file)
}
