// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/iaa/config"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "TD", cfg.Category)
	require.Equal(t, "ja", cfg.Language)
	require.Equal(t, "text", cfg.Format)
	require.Equal(t, 1e-4, cfg.Sinkhorn.Tolerance)
	require.Equal(t, 50, cfg.Sinkhorn.MaxIter)
	require.Equal(t, filepath.Join("res", "dic", "TD_ja.dic"), cfg.DictionaryPath())

	cfg.Language = "en"
	require.Equal(t, filepath.Join("res", "dic", "TD.dic"), cfg.DictionaryPath())

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, l)
	require.Len(t, cfg.MatrixOptions(slog.Default()), 3)
	cfg.Sinkhorn.LegacyColumnGuard = true
	require.Len(t, cfg.MatrixOptions(slog.Default()), 4)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "iaa.toml")
	body := `
input = "data"
category = "TD2"
language = "en"
annotators = ["a", "b", "c"]
weights = [0.6, 0.4]
format = "yaml"
log_level = "debug"

[sinkhorn]
max_iter = 200
legacy_column_guard = true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "data", cfg.Input)
	require.Equal(t, []string{"a", "b", "c"}, cfg.Annotators)
	require.Equal(t, []float64{0.6, 0.4}, cfg.Weights)
	require.Equal(t, "yaml", cfg.Format)
	require.Equal(t, 200, cfg.Sinkhorn.MaxIter)
	require.Equal(t, 1e-4, cfg.Sinkhorn.Tolerance, "unset keys keep defaults")
	require.True(t, cfg.Sinkhorn.LegacyColumnGuard)
	require.Equal(t, filepath.Join("res", "dic", "TD2.dic"), cfg.DictionaryPath())
}

func TestLoad_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown key":  `colour = "red"`,
		"bad format":   `format = "xml"`,
		"bad weight":   `weights = [0.5, -1.0]`,
		"bad level":    `log_level = "loud"`,
		"bad max_iter": "[sinkhorn]\nmax_iter = 0",
		"bad tol":      "[sinkhorn]\ntolerance = -1.0",
		"no category":  `category = ""`,
	}
	dir := t.TempDir()
	for name, body := range cases {
		path := filepath.Join(dir, name+".toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := config.Load(path)
		require.ErrorIs(t, err, config.ErrInvalidConfig, name)
	}

	_, err := config.Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}
