package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the severity of a log call.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Log emits msg at level. LevelFatal terminates through the logger's fatal hook.
func Log(level Level, msg string, fields ...zap.Field) {
	l := Logger()
	if ce := l.Check(level.zapLevel(), msg); ce != nil {
		ce.Write(fields...)
	}
}

func Debug(msg string, fields ...zap.Field) { Log(LevelDebug, msg, fields...) }

func Info(msg string, fields ...zap.Field) { Log(LevelInfo, msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Log(LevelWarn, msg, fields...) }

func Error(msg string, fields ...zap.Field) { Log(LevelError, msg, fields...) }

// Fatal emits msg and terminates the process. zap runs the fatal hook even
// when the fatal level is disabled, so a no-op logger still exits.
func Fatal(msg string, fields ...zap.Field) { Log(LevelFatal, msg, fields...) }

// Assert checks cond. On failure it either aborts through Fatal, when
// asserts are enabled, or returns err for the caller to propagate.
func Assert(cond bool, err error) error {
	if cond {
		return nil
	}
	if AssertsEnabled() {
		Fatal("assertion failed", zap.Error(err))
	}
	return err
}
