// Deltalint runs lint checks and automatic fixes scoped to the lines a git
// diff actually changed.
//
// It fans per-file checks out over a worker pool, aggregates pass/fail
// results deterministically, and exits with codes suitable for CI gating
// and git hooks.
//
// Usage:
//
//	deltalint tidy --source-group modified     # clang-tidy on changed lines
//	deltalint format src/main.cpp              # verify code style
//	deltalint format --fix src/main.cpp        # apply code style
//	deltalint whitespace --source-group staged # trailing whitespace, staged files
//	deltalint newline --source-group all       # trailing newline, whole repo
//	deltalint copyright --fix src/main.cpp     # update copyright years
//
// See https://github.com/deltalint/deltalint for full documentation.
package main
