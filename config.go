package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

const (
	defaultMaxFiles      = 50
	defaultMaxTotalLines = 5000
)

var defaultIgnoreDirs = []string{
	".git",
	"node_modules",
	"__pycache__",
	".venv",
	"venv",
}

// ErrInvalidConfig is returned when a Config cannot drive a traversal.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the read-only input of one traversal.
type Config struct {
	IgnoreDirs       map[string]struct{} // Exact path-segment names, any depth
	IgnorePatterns   []string            // Globs matched against the full path, in order
	MaxFiles         int
	MaxTotalLines    int
	RespectGitignore bool // Also skip paths matched by <root>/.gitignore
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		IgnoreDirs:    dirSet(defaultIgnoreDirs),
		MaxFiles:      defaultMaxFiles,
		MaxTotalLines: defaultMaxTotalLines,
	}
}

// Validate checks the caps and every glob pattern.
func (c Config) Validate() error {
	if c.MaxFiles <= 0 {
		return fmt.Errorf("%w: max files must be positive, got %d", ErrInvalidConfig, c.MaxFiles)
	}
	if c.MaxTotalLines <= 0 {
		return fmt.Errorf("%w: max total lines must be positive, got %d", ErrInvalidConfig, c.MaxTotalLines)
	}
	for _, p := range c.IgnorePatterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return fmt.Errorf("%w: invalid glob pattern '%s'", ErrInvalidConfig, p)
		}
	}
	return nil
}

// dirSet builds the excluded-directory set, dropping blanks.
func dirSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// setConfigDefaults registers the defaults every other source overrides.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("ignore_dirs", defaultIgnoreDirs)
	v.SetDefault("ignore_patterns", []string{})
	v.SetDefault("max_files", defaultMaxFiles)
	v.SetDefault("max_total_lines", defaultMaxTotalLines)
	v.SetDefault("gitignore", false)
	v.SetDefault("languages_file", "")
	v.SetDefault("language", []string{})
}

// readConfigFile looks for config.toml in ~/.config/clipsource and the working
// directory, and wires CLIPSOURCE_* environment variables. A missing file is not
// an error; the returned path is empty in that case.
func readConfigFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clipsource"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix("CLIPSOURCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// loadConfig turns the layered viper values into a validated Config.
func loadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		IgnoreDirs:       dirSet(v.GetStringSlice("ignore_dirs")),
		IgnorePatterns:   nonEmpty(v.GetStringSlice("ignore_patterns")),
		MaxFiles:         v.GetInt("max_files"),
		MaxTotalLines:    v.GetInt("max_total_lines"),
		RespectGitignore: v.GetBool("gitignore"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
