// Package config loads tool configuration from defaults, an optional TOML
// file, and DELTALINT_-prefixed environment variables, in that order of
// precedence.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DELTALINT_"

// Config is the full application configuration.
type Config struct {
	Tools struct {
		Git         string `koanf:"git"`
		ClangTidy   string `koanf:"clang_tidy"`
		ClangFormat string `koanf:"clang_format"`
	} `koanf:"tools"`

	Tidy struct {
		Checks           []string `koanf:"checks"`
		WarningsAsErrors bool     `koanf:"warnings_as_errors"`
		Database         string   `koanf:"database"`
		HeaderFilter     string   `koanf:"header_filter"`
		Extensions       []string `koanf:"extensions"`
	} `koanf:"tidy"`

	Format struct {
		Extensions []string `koanf:"extensions"`
	} `koanf:"format"`

	Copyright struct {
		// Pattern must contain exactly one capture group matching the
		// year list inside the copyright statement.
		Pattern    string   `koanf:"pattern"`
		Extensions []string `koanf:"extensions"`
	} `koanf:"copyright"`

	Run struct {
		Jobs         int  `koanf:"jobs"`
		Progress     bool `koanf:"progress"`
		ContextLines int  `koanf:"context_lines"`
	} `koanf:"run"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"tools.git":          "git",
		"tools.clang_tidy":   "clang-tidy",
		"tools.clang_format": "clang-format",

		"tidy.warnings_as_errors": true,
		"tidy.database":           "build",
		"tidy.extensions":         []string{".cpp", ".cc", ".cxx"},

		"format.extensions": []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h"},

		"copyright.pattern":    `Copyright \(c\) ([0-9, -]+)`,
		"copyright.extensions": []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h"},

		"run.jobs":          0,
		"run.progress":      true,
		"run.context_lines": 0,
	}
}

// Load reads the configuration. When configPath is empty, the default
// locations ./deltalint.toml and $HOME/.deltalint.toml are tried in order;
// a missing default file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./deltalint.toml", "$HOME/.deltalint.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// DELTALINT_RUN_JOBS maps to run.jobs; only the first underscore
	// separates the section from the key.
	k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(s, "_", ".", 1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot drive a run.
func Validate(cfg *Config) error {
	if cfg.Run.Jobs < 0 {
		return fmt.Errorf("run.jobs must not be negative (got %d)", cfg.Run.Jobs)
	}
	if cfg.Run.ContextLines < 0 {
		return fmt.Errorf("run.context_lines must not be negative (got %d)", cfg.Run.ContextLines)
	}

	re, err := regexp.Compile(cfg.Copyright.Pattern)
	if err != nil {
		return fmt.Errorf("copyright.pattern does not compile: %w", err)
	}
	if re.NumSubexp() != 1 {
		return fmt.Errorf("copyright.pattern must contain exactly one capture group for the year list (found %d)",
			re.NumSubexp())
	}

	for _, ext := range allExtensions(cfg) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Init writes a commented sample configuration to configPath.
func Init(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sample := `# deltalint configuration

[tools]
git = "git"
clang_tidy = "clang-tidy"
clang_format = "clang-format"

[tidy]
checks = []
warnings_as_errors = true
database = "build"
extensions = [".cpp", ".cc", ".cxx"]

[format]
extensions = [".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h"]

[copyright]
pattern = 'Copyright \(c\) ([0-9, -]+)'
extensions = [".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h"]

[run]
# 0 means one worker per CPU.
jobs = 0
progress = true
context_lines = 0
`

	return os.WriteFile(configPath, []byte(sample), 0o644)
}

func allExtensions(cfg *Config) []string {
	var out []string
	out = append(out, cfg.Tidy.Extensions...)
	out = append(out, cfg.Format.Extensions...)
	out = append(out, cfg.Copyright.Extensions...)
	return out
}
