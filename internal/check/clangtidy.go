package check

import (
	"fmt"
	"strings"

	"github.com/deltalint/deltalint/internal/lines"
)

// ClangTidy wraps the clang-tidy binary as a line-filterable check.
//
// Success is classified purely by the subprocess exit code; diagnostics are
// captured verbatim and interpreted by nobody but the reader.
type ClangTidy struct {
	CLIMeta
	bin      Binary
	baseArgs []string
}

// ClangTidyOptions configures a ClangTidy check.
type ClangTidyOptions struct {
	// Program overrides the binary name. Defaults to "clang-tidy".
	Program string

	// Checks is the --checks= selector list.
	Checks []string

	// WarningsAsErrors promotes every warning to an error, which is what
	// makes the exit code a usable pass/fail signal.
	WarningsAsErrors bool

	// DatabasePath is the directory containing compile_commands.json.
	DatabasePath string

	// HeaderFilter restricts which headers produce diagnostics.
	HeaderFilter string

	// Quiet suppresses the per-file banner clang-tidy prints by default.
	Quiet bool
}

// NewClangTidy resolves the binary and bakes the reusable argument prefix.
func NewClangTidy(opts ClangTidyOptions) (*ClangTidy, error) {
	program := opts.Program
	if program == "" {
		program = "clang-tidy"
	}
	bin, err := FindBinary(program)
	if err != nil {
		return nil, fmt.Errorf("locating %s: %w", program, err)
	}

	var args []string
	if len(opts.Checks) > 0 {
		args = append(args, "--checks="+strings.Join(opts.Checks, ","))
	}
	if opts.WarningsAsErrors {
		args = append(args, "--warnings-as-errors=*")
	}
	if opts.DatabasePath != "" {
		args = append(args, "-p="+opts.DatabasePath)
	}
	if opts.HeaderFilter != "" {
		args = append(args, "--header-filter="+opts.HeaderFilter)
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}

	return &ClangTidy{
		CLIMeta:  CLIMeta{Label: "c++ clang-tidy"},
		bin:      bin,
		baseArgs: args,
	}, nil
}

// RunScoped invokes clang-tidy on file, restricting diagnostics to the given
// line filters. The suppression happens inside clang-tidy via --line-filter,
// not by post-processing its output.
func (c *ClangTidy) RunScoped(file string, filters []lines.FileFilter, fix bool) Result {
	args := append([]string{}, c.baseArgs...)
	if filters != nil {
		args = append(args, "--line-filter", lines.FormatFilters(filters))
	}
	if fix {
		args = append(args, "--fix")
	}
	args = append(args, file)
	return c.bin.Exec("", args...)
}

// Verify runs clang-tidy unscoped over the whole file.
func (c *ClangTidy) Verify(file string) Result {
	return c.RunScoped(file, nil, false)
}

// Fix runs clang-tidy with --fix over the whole file.
func (c *ClangTidy) Fix(file string) Result {
	return c.RunScoped(file, nil, true)
}
