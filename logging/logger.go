// Package logging is the leveled log, assert and fatal collaborator used by
// the engine. Calls take a severity and a pre-formatted message; structured
// context is passed as zap fields.
package logging

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/lxengine/config"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	loggerMu   sync.RWMutex

	asserts atomic.Bool
)

// Logger returns the package logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		if logger == nil {
			logger = zap.NewNop()
		}
		loggerMu.Unlock()
	})
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// SetAsserts controls whether a failed Assert aborts through Fatal.
func SetAsserts(enabled bool) {
	asserts.Store(enabled)
}

// AssertsEnabled reports the current assert mode.
func AssertsEnabled() bool {
	return asserts.Load()
}

// New builds a zap logger from configuration.
func New(cfg config.Config, opts ...zap.Option) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.LogFormat == config.FormatJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	return zc.Build(opts...)
}

// Configure installs a logger built from cfg and applies the assert mode.
func Configure(cfg config.Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	SetLogger(l)
	SetAsserts(cfg.Asserts)
	return nil
}
