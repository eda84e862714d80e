// SPDX-License-Identifier: MIT

// Package config holds the settings of an agreement run: where the sheets
// live, which dictionary to use, who to compare and how to report.
//
// Settings come from Default, are overridden by an optional TOML file (Load)
// and finally by command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/iaa/matrix"
)

// ErrInvalidConfig reports a setting that cannot drive a run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Formats accepted by Config.Format.
var Formats = []string{"text", "yaml", "json"}

// Sinkhorn tunes the doubly stochastic normalisation.
type Sinkhorn struct {
	Tolerance         float64 `toml:"tolerance"`
	MaxIter           int     `toml:"max_iter"`
	LegacyColumnGuard bool    `toml:"legacy_column_guard"`
}

// Config is a complete run description.
type Config struct {
	Input         string    `toml:"input"`
	Output        string    `toml:"output"`
	DictionaryDir string    `toml:"dictionary_dir"`
	Language      string    `toml:"language"`
	Category      string    `toml:"category"`
	Annotators    []string  `toml:"annotators"`
	Annotator1    string    `toml:"annotator1"`
	Annotator2    string    `toml:"annotator2"`
	SystemFilter  string    `toml:"system_filter"`
	Weights       []float64 `toml:"weights"`
	Format        string    `toml:"format"`
	HTML          string    `toml:"html"`
	PNGDir        string    `toml:"png_dir"`
	LogLevel      string    `toml:"log_level"`
	Sinkhorn      Sinkhorn  `toml:"sinkhorn"`
}

// Default returns the settings used when nothing else is given.
func Default() *Config {
	return &Config{
		Input:         "input",
		DictionaryDir: filepath.Join(".", "res", "dic"),
		Language:      "ja",
		Category:      "TD",
		Format:        "text",
		LogLevel:      "info",
		Sinkhorn: Sinkhorn{
			Tolerance: matrix.DefaultSinkhornTolerance,
			MaxIter:   matrix.DefaultSinkhornMaxIter,
		},
	}
}

// Load reads path on top of Default and validates the result. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("config: %s: unknown key %q: %w", path, keys[0].String(), ErrInvalidConfig)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("input is empty: %w", ErrInvalidConfig)
	case c.Category == "":
		return fmt.Errorf("category is empty: %w", ErrInvalidConfig)
	case !slices.Contains(Formats, c.Format):
		return fmt.Errorf("format %q not in %v: %w", c.Format, Formats, ErrInvalidConfig)
	case !(c.Sinkhorn.Tolerance > 0) || math.IsInf(c.Sinkhorn.Tolerance, 0):
		return fmt.Errorf("sinkhorn tolerance %g: %w", c.Sinkhorn.Tolerance, ErrInvalidConfig)
	case c.Sinkhorn.MaxIter <= 0:
		return fmt.Errorf("sinkhorn max_iter %d: %w", c.Sinkhorn.MaxIter, ErrInvalidConfig)
	}
	for i, w := range c.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("weights[%d] = %g: %w", i, w, ErrInvalidConfig)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidConfig)
	}

	return l, nil
}

// DictionaryPath resolves the category dictionary file. Japanese
// dictionaries carry a "_ja" suffix.
func (c *Config) DictionaryPath() string {
	name := c.Category + ".dic"
	if c.Language == "ja" {
		name = c.Category + "_ja.dic"
	}

	return filepath.Join(c.DictionaryDir, name)
}

// MatrixOptions translates the Sinkhorn section into matrix options.
func (c *Config) MatrixOptions(log *slog.Logger) []matrix.Option {
	opts := []matrix.Option{
		matrix.WithTolerance(c.Sinkhorn.Tolerance),
		matrix.WithMaxIter(c.Sinkhorn.MaxIter),
		matrix.WithLogger(log),
	}
	if c.Sinkhorn.LegacyColumnGuard {
		opts = append(opts, matrix.WithLegacyColumnGuard())
	}

	return opts
}
