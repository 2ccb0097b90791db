package engine

import (
	"go.uber.org/zap"

	"github.com/wippyai/lxengine/logging"
	"github.com/wippyai/lxengine/resource"
)

// Logger returns the engine's logger, a named child of the logging package
// logger. It is a no-op logger unless logging has been configured.
func Logger() *zap.Logger {
	return logging.Logger().Named("engine")
}

// lifecycleLog reports document share changes at debug level.
type lifecycleLog struct {
	instance string
}

func (l *lifecycleLog) OnResourceEvent(e resource.Event) {
	log := Logger()
	if ce := log.Check(zap.DebugLevel, "document "+e.Type.String()); ce != nil {
		fields := []zap.Field{
			zap.String("engine", l.instance),
			zap.Stringer("handle", e.Handle),
			zap.Uint32("shares", e.Shares),
		}
		if d, ok := e.Value.(*Document); ok {
			fields = append(fields, zap.String("document", d.ID()))
		}
		ce.Write(fields...)
	}
}
