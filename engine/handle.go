package engine

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/lxengine/diag"
	"github.com/wippyai/lxengine/errors"
)

// Handle is one shared reference to the engine. Handles are independent:
// releasing one never invalidates another. Operations that change state fail
// with a released error once this handle has been released; read-only queries
// keep reporting the state of the engine it referred to.
type Handle struct {
	engine   *instance
	released atomic.Bool
}

func (h *Handle) check(phase errors.Phase) error {
	if h.released.Load() {
		return failed(errors.Released(phase, "engine handle"))
	}
	return nil
}

// Release drops this handle. The engine is destroyed when its last handle is
// released, whether or not Shutdown was called.
func (h *Handle) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return failed(errors.Released(errors.PhaseAcquire, "engine handle"))
	}
	release(h.engine)
	return nil
}

// Released reports whether Release has been called on this handle.
func (h *Handle) Released() bool { return h.released.Load() }

// Retain returns another independent handle to the same engine.
func (h *Handle) Retain() (*Handle, error) {
	if err := h.check(errors.PhaseAcquire); err != nil {
		return nil, err
	}
	retain(h.engine)
	return &Handle{engine: h.engine}, nil
}

// InstanceID identifies the engine instance the handle refers to.
func (h *Handle) InstanceID() string { return h.engine.id }

func (h *Handle) VersionMajor() int    { return VersionMajor }
func (h *Handle) VersionMinor() int    { return VersionMinor }
func (h *Handle) VersionRevision() int { return VersionRevision }

// Shutdown closes every active document and rejects later creates. Handles,
// including this one, remain valid.
func (h *Handle) Shutdown() error {
	if err := h.check(errors.PhaseShutdown); err != nil {
		return err
	}
	n := h.engine.registry.Len()
	err := h.engine.registry.Shutdown()
	Logger().Info("engine shutdown",
		zap.String("engine", h.engine.id),
		zap.Int("closed", n),
		zap.Error(err))
	return err
}

// ShuttingDown reports whether Shutdown has been called on the engine.
func (h *Handle) ShuttingDown() bool {
	return h.engine.registry.ShuttingDown()
}

// CreateDocument creates a document. The registry keeps one share and the
// returned ref is the caller's.
func (h *Handle) CreateDocument() (*DocumentRef, error) {
	if err := h.check(errors.PhaseCreate); err != nil {
		return nil, err
	}
	return h.engine.registry.CreateDocument()
}

// CloneDocument duplicates doc into a new registered document.
func (h *Handle) CloneDocument(doc *Document) (*DocumentRef, error) {
	if err := h.check(errors.PhaseClone); err != nil {
		return nil, err
	}
	return h.engine.registry.CloneDocument(doc)
}

// CloseDocument removes doc from the active set. It fails with an invalid
// argument error when doc is not active.
func (h *Handle) CloseDocument(doc *Document) error {
	if err := h.check(errors.PhaseClose); err != nil {
		return err
	}
	return h.engine.registry.CloseDocument(doc)
}

// Documents returns a snapshot of the active set.
func (h *Handle) Documents() []*Document {
	return h.engine.registry.Documents()
}

// Lookup finds an active document by ID.
func (h *Handle) Lookup(id string) (*Document, error) {
	return h.engine.registry.Lookup(id)
}

// ObjectCount returns the diagnostics record for typeName.
func (h *Handle) ObjectCount(typeName string) diag.ObjectCount {
	return h.engine.diag.Count(typeName)
}

// Diagnostics returns a report of every type observed by this engine.
func (h *Handle) Diagnostics() diag.Report {
	return h.engine.diag.Report()
}

// IncPerformanceCounter records one timed event under name.
func (h *Handle) IncPerformanceCounter(name string, d time.Duration) {
	h.engine.diag.IncPerformanceCounter(name, d)
}

// Environment returns the engine's environment settings.
func (h *Handle) Environment() *Environment {
	return h.engine.env
}
