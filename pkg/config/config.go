// Package config loads sighscope.toml.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// DefaultFilename is the config file looked up in the working directory when
// no -config flag is given.
const DefaultFilename = "sighscope.toml"

// Config holds the analysis settings.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`
	// Builtins controls whether the root scope gets the builtin types,
	// constants and functions.  Defaults to true.
	Builtins *bool `toml:"builtins"`
	// WarningsAsErrors makes warnings fail the check.
	WarningsAsErrors bool `toml:"warnings_as_errors"`
	// Include lists doublestar patterns of program files to check when none
	// are given on the command line.
	Include []string `toml:"include"`
	// IndexFile, if set, is where the scope index is written.
	IndexFile string `toml:"index_file"`
}

// Default returns the configuration used when there is no config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse decodes config file contents.  The name is used in errors.
func Parse(name, data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config %q: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %q: unknown keys: %s", name, strings.Join(keys, ", "))
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", name, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if cfg.Builtins == nil {
		builtins := true
		cfg.Builtins = &builtins
	}
}

// Validate checks the log level and include patterns.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("include: invalid pattern %q", pattern)
		}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// DeclareBuiltins reports whether the root scope gets builtins.
func (c *Config) DeclareBuiltins() bool {
	return c.Builtins == nil || *c.Builtins
}
