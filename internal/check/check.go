// Package check defines the Verify/Fix contract shared by every file check
// and the concrete families that implement it: subprocess-backed tools,
// diff-scoped wrappers, and small in-process checks.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Result is the outcome of checking or fixing one file.
type Result struct {
	Passed bool
	Stdout string
	Stderr string
}

// Pass returns a passing result with no output.
func Pass() Result { return Result{Passed: true} }

// Fail returns a failing result carrying stderr text.
func Fail(format string, args ...any) Result {
	return Result{Stderr: fmt.Sprintf(format, args...)}
}

// Verifier validates a single file without modifying it.
//
// Verify is called concurrently from multiple workers with distinct files,
// so implementations must not share unsynchronized mutable state.
type Verifier interface {
	Verify(file string) Result
}

// Fixer repairs a single file in place, unconditionally.
//
// For checks that are also Verifiers the orchestrator verifies first and
// only invokes Fix on non-conformant files; a fix-only check is invoked for
// every file.
type Fixer interface {
	Fix(file string) Result
}

// Check describes a check for reporting: its label, the command that
// reproduces its invocation, and the flags that toggle verbose and fix
// modes on that command. Concrete checks implement Verifier, Fixer, or both
// on top of this.
type Check interface {
	Name() string
	Command() []string
	VerboseFlags() []string
	FixFlags() []string
}

// Capability is the resolved role set of a check. The orchestrator computes
// it once at construction instead of re-asserting interfaces per call.
type Capability int

const (
	// VerifyOnly checks can validate but not repair.
	VerifyOnly Capability = iota
	// FixOnly checks always repair unconditionally.
	FixOnly
	// VerifyAndFix checks verify first and repair only non-conformant files.
	VerifyAndFix
)

// CapabilityOf resolves the roles a check implements.
func CapabilityOf(c Check) Capability {
	_, verifies := c.(Verifier)
	_, fixes := c.(Fixer)
	switch {
	case verifies && fixes:
		return VerifyAndFix
	case fixes:
		return FixOnly
	default:
		return VerifyOnly
	}
}

// CanVerify reports whether the capability includes verification.
func (c Capability) CanVerify() bool { return c == VerifyOnly || c == VerifyAndFix }

// CanFix reports whether the capability includes fixing.
func (c Capability) CanFix() bool { return c == FixOnly || c == VerifyAndFix }

func (c Capability) String() string {
	switch c {
	case VerifyOnly:
		return "verify-only"
	case FixOnly:
		return "fix-only"
	case VerifyAndFix:
		return "verify-and-fix"
	}
	return fmt.Sprintf("Capability(%d)", int(c))
}

// CommandString renders a reproduction command for display.
func CommandString(cmd []string) string {
	return strings.Join(cmd, " ")
}

// defaultVerboseFlags and defaultFixFlags are the conventional toggles most
// checks share. Checks with different CLIs override them.
var (
	defaultVerboseFlags = []string{"-v", "--verbose"}
	defaultFixFlags     = []string{"--fix"}
)

const (
	progressFlag   = "--progress"
	noProgressFlag = "--no-progress"
)

// Repro reconstructs the command line that reproduces the current
// invocation, with output-control flags stripped so the report can append
// its own verbose or fix toggles.
func Repro(stripFlags ...string) []string {
	strip := map[string]bool{progressFlag: true, noProgressFlag: true}
	for _, f := range stripFlags {
		strip[f] = true
	}

	cmd := []string{filepath.Base(os.Args[0])}
	for _, arg := range os.Args[1:] {
		if !strip[arg] {
			cmd = append(cmd, arg)
		}
	}
	return cmd
}

// CLIMeta supplies the reporting metadata shared by checks driven from the
// deltalint command line: the identifying label and the reproduction command
// derived from the live invocation.
type CLIMeta struct {
	Label string
}

func (m CLIMeta) Name() string { return m.Label }

func (m CLIMeta) Command() []string {
	return Repro(defaultVerboseFlags...)
}

func (m CLIMeta) VerboseFlags() []string { return defaultVerboseFlags }
func (m CLIMeta) FixFlags() []string     { return defaultFixFlags }
