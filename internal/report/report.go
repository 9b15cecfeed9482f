// Package report classifies per-file check outcomes and renders the final
// verify or fix summary.
//
// Rendering is deterministic for a fixed completion order; styling is
// decorative and never affects exit codes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/deltalint/deltalint/internal/check"
)

// State accumulates classified outcomes for one orchestration run. Files
// appear in completion order, which is not input order because completion
// is concurrent. A single collector owns the State, so it needs no locking.
type State struct {
	Passing   []string
	Failing   []string
	Completed int
}

// Record classifies one finished file.
func (s *State) Record(file string, passed bool) {
	if passed {
		s.Passing = append(s.Passing, file)
	} else {
		s.Failing = append(s.Failing, file)
	}
}

// RenderVerify writes the verification summary and returns the process exit
// code: 0 when every file passed, 1 otherwise.
//
// On failure the summary lists the failing files and suggests a
// reproduction command with the verbose flag appended; when the check can
// also fix, a second suggestion with the fix flag follows.
func RenderVerify(stdout, stderr io.Writer, c check.Check, capability check.Capability, st *State, verbose bool) int {
	name := c.Name()

	if len(st.Failing) == 0 {
		plural := "files"
		if len(st.Passing) == 1 {
			plural = "file"
		}
		fmt.Fprintln(stdout, passStyle.Render(
			fmt.Sprintf("%d %s passed %s validation", len(st.Passing), plural, name)))
		return 0
	}

	fmt.Fprintln(stderr, failStyle.Render(
		fmt.Sprintf("The following files failed %s validation:", name)))
	for _, file := range st.Failing {
		fmt.Fprintf(stderr, " %s %s\n", bullet(), file)
	}

	command := check.CommandString(c.Command())

	if !verbose {
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Additional diagnostics may be provided by running:")
		printCommand(stderr, command+" "+c.VerboseFlags()[0])
	}

	if capability.CanFix() {
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Fixes can be automatically applied to your work tree with:")
		printCommand(stderr, command+" "+c.FixFlags()[0])
		fmt.Fprintln(stderr)
	}
	return 1
}

// RenderFix writes the fix summary and returns the process exit code: the
// number of files that still require manual repair.
func RenderFix(stdout, stderr io.Writer, c check.Check, st *State) int {
	name := c.Name()

	if len(st.Passing) == 0 && len(st.Failing) == 0 {
		fmt.Fprintf(stdout, "No files needed to be fixed for %s validation\n", name)
		return 0
	}

	if len(st.Passing) > 0 {
		fmt.Fprintf(stdout, "The following files were automatically fixed for %s validation:\n", name)
		for _, file := range st.Passing {
			fmt.Fprintf(stdout, " %s %s\n", bullet(), file)
		}
	}

	if len(st.Failing) > 0 {
		fmt.Fprintf(stderr, "The following files could not be automatically fixed for %s validation:\n", name)
		for _, file := range st.Failing {
			fmt.Fprintf(stderr, " %s %s\n", bullet(), file)
		}
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s These files will require manual changes to pass %s validation!\n",
			noteStyle.Render("NOTE:"), name)
	}

	return len(st.Failing)
}

// DumpFailure prints the captured output of one failing file, stdout
// section to stdout and stderr section to stderr, each under a divider.
func DumpFailure(stdout, stderr io.Writer, file string, r check.Result) {
	divider := strings.Repeat("-", 80)
	if strings.TrimSpace(r.Stdout) != "" {
		fmt.Fprintln(stdout, divider)
		fmt.Fprintf(stdout, "stdout for %s:\n", file)
		fmt.Fprintln(stdout, divider)
		fmt.Fprintln(stdout, strings.TrimRight(r.Stdout, "\n"))
	}
	if strings.TrimSpace(r.Stderr) != "" {
		fmt.Fprintln(stderr, divider)
		fmt.Fprintf(stderr, "stderr for %s:\n", file)
		fmt.Fprintln(stderr, divider)
		fmt.Fprintln(stderr, strings.TrimRight(r.Stderr, "\n"))
	}
}

func printCommand(w io.Writer, command string) {
	fmt.Fprintf(w, ">  %s\n", commandStyle.Render(command))
}
