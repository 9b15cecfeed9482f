// Package cli wires together the Cobra command tree for the deltalint
// binary.
//
// It defines the root command and one subcommand per check family (tidy,
// format, whitespace, newline, copyright, config, version), binds flags,
// reads configuration, selects the files to run on, and hands the runner a
// fully constructed check.
package cli
