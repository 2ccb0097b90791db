package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/lxengine/config"
	"github.com/wippyai/lxengine/errors"
)

// observe installs an observed logger whose fatal hook panics, and restores
// the previous logger and assert mode when the test ends.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	prevAsserts := AssertsEnabled()
	SetLogger(zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic)))
	t.Cleanup(func() {
		SetLogger(prev)
		SetAsserts(prevAsserts)
	})
	return logs
}

func TestLevels(t *testing.T) {
	logs := observe(t)

	Debug("d")
	Info("i", zap.Int("n", 1))
	Warn("w")
	Error("e")
	Log(LevelInfo, "direct")

	entries := logs.All()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, int64(1), entries[1].ContextMap()["n"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "direct", entries[4].Message)
}

func TestFatalRunsHook(t *testing.T) {
	logs := observe(t)

	assert.Panics(t, func() { Fatal("counter underflow") })
	require.Equal(t, 1, logs.FilterMessage("counter underflow").Len())
}

func TestAssert(t *testing.T) {
	t.Run("pass", func(t *testing.T) {
		observe(t)
		SetAsserts(true)
		assert.NoError(t, Assert(true, errors.Precondition(errors.PhaseAssert, "unused")))
	})

	t.Run("checked", func(t *testing.T) {
		logs := observe(t)
		SetAsserts(false)
		want := errors.Precondition(errors.PhaseCreate, "shutting down")
		err := Assert(false, want)
		assert.Same(t, want, err)
		assert.Zero(t, logs.Len())
	})

	t.Run("abort", func(t *testing.T) {
		logs := observe(t)
		SetAsserts(true)
		assert.Panics(t, func() {
			_ = Assert(false, errors.Precondition(errors.PhaseCreate, "shutting down"))
		})
		assert.Equal(t, 1, logs.FilterMessage("assertion failed").Len())
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "fatal", LevelFatal.String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.LogFormat = config.FormatJSON
	cfg.LogLevel = "warn"

	l, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "loud"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestSetLoggerNil(t *testing.T) {
	observe(t)
	SetLogger(nil)
	assert.NotNil(t, Logger())
}
