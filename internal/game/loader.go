package game

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go-match/internal/state"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// LevelConfig is one row of the level table.
type LevelConfig struct {
	Cols      int `yaml:"cols"`
	Rows      int `yaml:"rows"`
	Pairs     int `yaml:"pairs"`
	MaxMoves  int `yaml:"max_moves"`
	TimeLimit int `yaml:"time_limit"` // seconds
}

// Options returns the parts of the level the rules engine needs.
func (l LevelConfig) Options() state.LevelOptions {
	return state.LevelOptions{Pairs: l.Pairs, MaxMoves: l.MaxMoves}
}

// Theme is a named, ordered icon set.
type Theme struct {
	Name  string   `yaml:"name"`
	Icons []string `yaml:"icons"`
}

// Config is the static reference data: levels 1..N and the themes.
type Config struct {
	Levels []LevelConfig `yaml:"levels"`
	Themes []Theme       `yaml:"themes"`
}

// Level returns the 1-based level's configuration.
func (c Config) Level(n int) (LevelConfig, bool) {
	if n < 1 || n > len(c.Levels) {
		return LevelConfig{}, false
	}
	return c.Levels[n-1], true
}

// Theme looks a theme up by name.
func (c Config) Theme(name string) (Theme, bool) {
	for _, t := range c.Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeNames lists theme names in table order.
func (c Config) ThemeNames() []string {
	names := make([]string, len(c.Themes))
	for i, t := range c.Themes {
		names[i] = t.Name
	}
	return names
}

// DefaultConfig returns the built-in level table and themes.
func DefaultConfig() Config {
	cfg, err := ParseConfig(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in config is invalid: %v", err))
	}
	return cfg
}

// LoadConfig reads a YAML file with the same shape as the built-in table.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates YAML reference data.
func ParseConfig(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the semantic constraints of the reference data.
func (c Config) Validate() error {
	var errs []string

	if len(c.Levels) == 0 {
		errs = append(errs, "at least one level is required")
	}
	for i, l := range c.Levels {
		n := i + 1
		if l.Pairs <= 0 {
			errs = append(errs, fmt.Sprintf("levels[%d].pairs must be >= 1", n))
		}
		if l.Cols <= 0 || l.Rows <= 0 {
			errs = append(errs, fmt.Sprintf("levels[%d] grid must be at least 1x1", n))
		} else if l.Cols*l.Rows < l.Pairs*2 {
			errs = append(errs, fmt.Sprintf("levels[%d] grid %dx%d cannot hold %d cards", n, l.Cols, l.Rows, l.Pairs*2))
		}
		// The star ratio divides by maxMoves - 2*pairs.
		if l.MaxMoves <= l.Pairs*2 {
			errs = append(errs, fmt.Sprintf("levels[%d].max_moves must be > %d", n, l.Pairs*2))
		}
		if l.TimeLimit < 0 {
			errs = append(errs, fmt.Sprintf("levels[%d].time_limit must be >= 0", n))
		}
	}

	if len(c.Themes) == 0 {
		errs = append(errs, "at least one theme is required")
	}
	seen := make(map[string]bool)
	for i, t := range c.Themes {
		if t.Name == "" {
			errs = append(errs, fmt.Sprintf("themes[%d].name is required", i))
		} else if seen[t.Name] {
			errs = append(errs, fmt.Sprintf("themes[%d].name %q is duplicated", i, t.Name))
		}
		seen[t.Name] = true
		if len(t.Icons) == 0 {
			errs = append(errs, fmt.Sprintf("themes[%d].icons must not be empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
