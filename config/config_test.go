package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/lxengine/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
log_format = "json"
asserts = true
leak_check = false
time_scale = 0.5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.True(t, cfg.Asserts)
	assert.False(t, cfg.LeakCheck)
	assert.InDelta(t, 0.5, cfg.TimeScale, 1e-9)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `log_level = "debug"`)
	t.Setenv("LXENGINE_LOG_LEVEL", "WARN")
	t.Setenv("LXENGINE_ASSERTS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Asserts)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidData})
	})

	t.Run("bad toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, `log_level = `))
		require.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("LXENGINE_TIME_SCALE", "fast")
		_, err := Load("")
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"time scale", func(c *Config) { c.TimeScale = -1 }, "time_scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidArgument)

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, []string{tt.path}, e.Path)
		})
	}
}
