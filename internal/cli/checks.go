package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/deltalint/deltalint/internal/check"
	"github.com/deltalint/deltalint/internal/config"
	"github.com/deltalint/deltalint/internal/runner"
	"github.com/deltalint/deltalint/internal/sources"
	"github.com/deltalint/deltalint/internal/vcs"
)

// Shared check flags
var (
	flagSourceGroup string
	flagStaged      bool
	flagNoStaged    bool
	flagJobs        int
	flagVerbose     bool
	flagFix         bool
	flagProgress    bool
	flagNoProgress  bool
)

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSourceGroup, "source-group", "input", "File selection: all, staged, modified, or input (positional args only)")
	cmd.Flags().BoolVar(&flagStaged, "staged", false, "Validate staged file content instead of the work tree")
	cmd.Flags().BoolVar(&flagNoStaged, "no-staged", false, "Force work-tree content even for the staged source group")
	cmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "Worker count (0 = one per CPU)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Dump tool output for each failing file")
	cmd.Flags().BoolVar(&flagFix, "fix", false, "Repair non-conformant files in place")
	cmd.Flags().BoolVar(&flagProgress, "progress", false, "Force the progress bar on")
	cmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Force the progress bar off")
}

// checkBuilder constructs the check a subcommand runs. staged reports
// whether file content should come from the index.
type checkBuilder func(cfg *config.Config, git *vcs.Git, source check.ReadSource, staged bool) (check.Check, error)

// runSetup is everything a check run needs beyond the check itself.
type runSetup struct {
	cfg    *config.Config
	git    *vcs.Git
	files  []string
	staged bool
	source check.ReadSource
}

func setupRun(args []string, extensions func(*config.Config) []string) (*runSetup, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	git, err := vcs.New(vcs.Options{Program: cfg.Tools.Git})
	if err != nil {
		return nil, err
	}

	group, err := sources.ParseGroup(flagSourceGroup)
	if err != nil {
		return nil, err
	}

	staged := stagedMode(group)

	files, err := sources.FindWithExtensions(group, git, extensions(cfg))
	if err != nil {
		return nil, err
	}
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		files = append(files, abs)
	}

	source := check.ReadWorkTree
	if staged {
		source = func(file string) (string, error) {
			return sources.ReadFile(file, git, true)
		}
	}

	return &runSetup{cfg: cfg, git: git, files: files, staged: staged, source: source}, nil
}

// stagedMode resolves the staged toggles: --no-staged wins, --staged forces
// index content, and the staged source group implies it.
func stagedMode(group sources.Group) bool {
	if flagNoStaged {
		return false
	}
	if flagStaged {
		return true
	}
	return group == sources.Staged
}

func runnerOptions(cfg *config.Config) runner.Options {
	progress := cfg.Run.Progress || flagProgress
	if flagNoProgress {
		progress = false
	}

	jobs := cfg.Run.Jobs
	if flagJobs > 0 {
		jobs = flagJobs
	}

	return runner.Options{
		Jobs:         jobs,
		ShowProgress: progress && isatty.IsTerminal(os.Stdout.Fd()),
		Verbose:      flagVerbose,
	}
}

func runCheck(args []string, extensions func(*config.Config) []string, build checkBuilder) {
	setup, err := setupRun(args, extensions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	c, err := build(setup.cfg, setup.git, setup.source, setup.staged)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	mode := runner.ModeVerify
	if flagFix {
		mode = runner.ModeFix
	}

	code, err := runner.Run(setup.files, c, mode, runnerOptions(setup.cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	exitCode = code
}

var tidyCmd = &cobra.Command{
	Use:   "tidy [files...]",
	Short: "Run clang-tidy on the changed lines of each file",
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(args,
			func(cfg *config.Config) []string { return cfg.Tidy.Extensions },
			func(cfg *config.Config, git *vcs.Git, source check.ReadSource, staged bool) (check.Check, error) {
				tool, err := check.NewClangTidy(check.ClangTidyOptions{
					Program:          cfg.Tools.ClangTidy,
					Checks:           cfg.Tidy.Checks,
					WarningsAsErrors: cfg.Tidy.WarningsAsErrors,
					DatabasePath:     cfg.Tidy.Database,
					HeaderFilter:     cfg.Tidy.HeaderFilter,
					Quiet:            !flagVerbose,
				})
				if err != nil {
					return nil, err
				}
				return check.NewDiffScoped(tool, git, staged, cfg.Run.ContextLines), nil
			})
	},
}

var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Verify or apply clang-format code style",
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(args,
			func(cfg *config.Config) []string { return cfg.Format.Extensions },
			func(cfg *config.Config, git *vcs.Git, source check.ReadSource, staged bool) (check.Check, error) {
				return check.NewClangFormat(check.ClangFormatOptions{
					Program: cfg.Tools.ClangFormat,
					Source:  source,
				})
			})
	},
}

var whitespaceCmd = &cobra.Command{
	Use:   "whitespace [files...]",
	Short: "Verify or strip trailing whitespace",
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(args,
			func(cfg *config.Config) []string { return cfg.Format.Extensions },
			func(cfg *config.Config, git *vcs.Git, source check.ReadSource, staged bool) (check.Check, error) {
				return check.NewTrailingWhitespace(source), nil
			})
	},
}

var newlineCmd = &cobra.Command{
	Use:   "newline [files...]",
	Short: "Verify or append the trailing newline",
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(args,
			func(cfg *config.Config) []string { return cfg.Format.Extensions },
			func(cfg *config.Config, git *vcs.Git, source check.ReadSource, staged bool) (check.Check, error) {
				return check.NewTrailingNewline(source), nil
			})
	},
}

var copyrightCmd = &cobra.Command{
	Use:   "copyright [files...]",
	Short: "Verify or update copyright year lists against git history",
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(args,
			func(cfg *config.Config) []string { return cfg.Copyright.Extensions },
			func(cfg *config.Config, git *vcs.Git, source check.ReadSource, staged bool) (check.Check, error) {
				return check.NewCopyrightYears(source, git, cfg.Copyright.Pattern)
			})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{tidyCmd, formatCmd, whitespaceCmd, newlineCmd, copyrightCmd} {
		addCheckFlags(cmd)
	}
}
