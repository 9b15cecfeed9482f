// Package runner fans per-file checks out across a bounded worker pool and
// funnels their results into the report aggregator.
//
// Workers send each completed outcome over a channel consumed by a single
// collector goroutine that owns the report state and the progress bar, so
// neither needs a lock and terminal writes never interleave.
package runner

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/deltalint/deltalint/internal/check"
	"github.com/deltalint/deltalint/internal/report"
)

// Mode selects between read-only verification and in-place repair.
type Mode int

const (
	// ModeVerify validates files without modifying them.
	ModeVerify Mode = iota
	// ModeFix repairs non-conformant files in place.
	ModeFix
)

func (m Mode) String() string {
	if m == ModeFix {
		return "fix"
	}
	return "verify"
}

// Options configures one orchestration run.
type Options struct {
	// Jobs bounds the worker pool. Zero means host parallelism.
	Jobs int

	// ShowProgress enables the redrawn progress bar.
	ShowProgress bool

	// Verbose dumps a failing file's captured output as soon as it
	// completes.
	Verbose bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// outcome is one task's completion message. A nil result is the fix-mode
// no-op: the file was already conformant and is recorded in neither list.
type outcome struct {
	file   string
	result *check.Result
}

// Run dispatches one task per file onto the pool and blocks until every
// task has completed, then renders the summary and returns the process exit
// code.
//
// A mode/capability mismatch is a configuration error reported before any
// task is dispatched.
func Run(files []string, c check.Check, mode Mode, opts Options) (int, error) {
	capability := check.CapabilityOf(c)
	if mode == ModeFix && !capability.CanFix() {
		return 0, fmt.Errorf("%s does not support fixing (capability %s)", c.Name(), capability)
	}
	if mode == ModeVerify && !capability.CanVerify() {
		return 0, fmt.Errorf("%s does not support verification (capability %s)", c.Name(), capability)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if len(files) == 0 {
		fmt.Fprintf(stdout, "No files for %s validation\n", c.Name())
		return 0, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	log.Debug().
		Str("check", c.Name()).
		Stringer("mode", mode).
		Int("files", len(files)).
		Int("jobs", jobs).
		Msg("dispatching checks")

	results := make(chan outcome)

	// The collector is the sole owner of the report state and the
	// progress bar for the duration of the run.
	state := &report.State{}
	bar := NewProgressBar(len(files), stdout)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for out := range results {
			state.Completed++

			if opts.Verbose && out.result != nil && !out.result.Passed {
				if opts.ShowProgress {
					bar.Clear()
				}
				report.DumpFailure(stdout, stderr, out.file, *out.result)
			}

			if opts.ShowProgress {
				bar.Draw(state.Completed)
			}

			if out.result != nil {
				state.Record(out.file, out.result.Passed)
			}
		}
	}()

	g := &errgroup.Group{}
	g.SetLimit(jobs)
	for _, file := range files {
		file := file
		g.Go(func() error {
			results <- outcome{file: file, result: runTask(c, capability, mode, file)}
			return nil
		})
	}

	// Join: every dispatched task finishes before reporting begins, and
	// the progress display is cleared exactly once.
	g.Wait()
	close(results)
	<-collectorDone
	if opts.ShowProgress {
		bar.Clear()
	}

	if mode == ModeFix {
		return report.RenderFix(stdout, stderr, c, state), nil
	}
	return report.RenderVerify(stdout, stderr, c, capability, state, opts.Verbose), nil
}

// runTask executes one check invocation, converting a panic into a failing
// result so a single bad file never aborts the run.
func runTask(c check.Check, capability check.Capability, mode Mode, file string) (result *check.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("file", file).Any("panic", r).Msg("check panicked")
			failed := check.Fail("%s: check panicked: %v", file, r)
			result = &failed
		}
	}()

	if mode == ModeVerify {
		r := c.(check.Verifier).Verify(file)
		return &r
	}

	// Fix mode. A check that can also verify is only repaired when it does
	// not already conform; nil marks the no-op.
	if capability == check.VerifyAndFix {
		if r := c.(check.Verifier).Verify(file); r.Passed {
			return nil
		}
	}
	r := c.(check.Fixer).Fix(file)
	return &r
}
