// Package config loads engine configuration.
//
// Values are resolved in order: built-in defaults, an optional TOML file,
// then LXENGINE_* environment variables. The result is validated before use.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/wippyai/lxengine/errors"
)

// Log encodings understood by the logging package.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
	// LogFormat is console or json.
	LogFormat string `toml:"log_format" env:"LOG_FORMAT"`
	// Asserts turns failed checked assertions into fatal aborts.
	Asserts bool `toml:"asserts" env:"ASSERTS"`
	// LeakCheck logs per-type instance counts when an engine is destroyed.
	LeakCheck bool `toml:"leak_check" env:"LEAK_CHECK"`
	// TimeScale seeds the engine environment.
	TimeScale float64 `toml:"time_scale" env:"TIME_SCALE"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LXENGINE_"

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: FormatConsole,
		Asserts:   false,
		LeakCheck: true,
		TimeScale: 1.0,
	}
}

// Load resolves a configuration. An empty path skips the file step.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Config("parse env", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func Validate(cfg Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
			Path("log_level").
			Value(cfg.LogLevel).
			Detail("unknown log level %q", cfg.LogLevel).
			Build()
	}
	switch cfg.LogFormat {
	case FormatConsole, FormatJSON:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
			Path("log_format").
			Value(cfg.LogFormat).
			Detail("unknown log format %q", cfg.LogFormat).
			Build()
	}
	if cfg.TimeScale < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
			Path("time_scale").
			Value(cfg.TimeScale).
			Detail("time scale cannot be negative").
			Build()
	}
	return nil
}

func loadToml(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Config("read "+path, err)
	}
	if _, err := toml.Decode(string(data), out); err != nil {
		return errors.Config("decode "+path, err)
	}
	return nil
}
