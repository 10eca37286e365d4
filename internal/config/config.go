// Package config loads the optional YAML configuration file. CLI flags are
// merged on top by the command layer; flags always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrBadInterval    = errors.New("watch interval must be positive")
)

// MaxConfigSize bounds the config file to keep decoding cheap.
const MaxConfigSize = 1 << 20

// Config holds all configuration for deck generation.
type Config struct {
	Watch  WatchConfig  `yaml:"watch"`
	Output OutputConfig `yaml:"output"`
	Slides SlidesConfig `yaml:"slides"`
}

// WatchConfig controls the poll loop.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"` // poll period (default 1s)
}

// OutputConfig controls where generated files land.
type OutputConfig struct {
	Dir string `yaml:"dir"` // output directory (empty = current directory)
}

// SlidesConfig controls the deck markup.
type SlidesConfig struct {
	Scheme        string `yaml:"scheme"`        // chroma color scheme for syntax.css
	ScriptURL     string `yaml:"scriptUrl"`     // slide framework script
	TemplateClass string `yaml:"templateClass"` // class on the slides <section>
	SyntaxHref    string `yaml:"syntaxHref"`    // stylesheet link for highlighted code
	StyleHref     string `yaml:"styleHref"`     // stylesheet link for the deck itself
}

// DefaultConfig returns the configuration used when no file is given.
// Markup defaults (script URL, template class, hrefs) stay empty here; the
// renderer fills them so there is a single source of truth.
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{Interval: time.Second},
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrConfigParse, MaxConfigSize)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that cannot be used as given.
func (c *Config) Validate() error {
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("%w: %v", ErrBadInterval, c.Watch.Interval)
	}
	return nil
}
