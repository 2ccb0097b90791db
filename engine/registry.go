package engine

import (
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/lxengine/errors"
	"github.com/wippyai/lxengine/logging"
	"github.com/wippyai/lxengine/object"
	"github.com/wippyai/lxengine/resource"
)

// Registry holds the active set of documents. The active set keeps one owning
// share per member; membership ends only through CloseDocument or Shutdown.
type Registry struct {
	tracker  object.Tracker
	arena    *resource.Arena[*Document]
	active   []*Document
	mu       sync.Mutex
	shutdown bool
}

func newRegistry(tracker object.Tracker) *Registry {
	return &Registry{
		tracker: tracker,
		arena:   resource.NewArena[*Document](),
	}
}

// failed routes a precondition failure through the assert collaborator.
func failed(err error) error {
	return logging.Assert(false, err)
}

// CreateDocument constructs a document, keeps one share in the active set and
// returns a second share to the caller.
func (r *Registry) CreateDocument() (*DocumentRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		return nil, failed(errors.Precondition(errors.PhaseCreate, "engine is shutting down"))
	}
	return r.insertLocked(newDocument(r.tracker))
}

// CloneDocument duplicates doc and registers the duplicate the same way
// CreateDocument does. doc must still be alive but need not be active.
func (r *Registry) CloneDocument(doc *Document) (*DocumentRef, error) {
	if err := r.owns(doc, errors.PhaseClone); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		return nil, failed(errors.Precondition(errors.PhaseClone, "engine is shutting down"))
	}
	dup, err := object.Clone(doc)
	if err != nil {
		return nil, failed(err)
	}
	return r.insertLocked(dup.(*Document))
}

// insertLocked stores doc with the registry's and the caller's shares;
// caller must hold r.mu.
func (r *Registry) insertLocked(doc *Document) (*DocumentRef, error) {
	doc.registry = r
	h, err := r.arena.Insert(doc, 2)
	if err != nil {
		doc.Drop()
		return nil, failed(errors.New(errors.PhaseCreate, errors.KindPrecondition).
			Type(doc.TypeName()).
			Detail("document storage unavailable").
			Cause(err).
			Build())
	}
	doc.handle = h
	r.active = append(r.active, doc)
	return &DocumentRef{doc: doc}, nil
}

// CloseDocument removes doc from the active set and releases the registry's
// share. If that was the last share the document is destroyed before
// CloseDocument returns.
func (r *Registry) CloseDocument(doc *Document) error {
	if err := r.owns(doc, errors.PhaseClose); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(doc)
	if i < 0 {
		return failed(errors.New(errors.PhaseClose, errors.KindInvalidArgument).
			Type(doc.TypeName()).
			Value(doc.id).
			Detail("document is not in the active set").
			Build())
	}
	r.active = slices.Delete(r.active, i, i+1)
	_, err := r.releaseShare(doc, errors.PhaseClose)
	return err
}

// owns rejects nil documents and documents created by another registry.
func (r *Registry) owns(doc *Document, phase errors.Phase) error {
	if doc == nil {
		return failed(errors.InvalidArgument(phase, "nil document"))
	}
	if doc.registry != r {
		return failed(errors.New(phase, errors.KindInvalidArgument).
			Type(doc.TypeName()).
			Value(doc.id).
			Detail("document belongs to another engine").
			Build())
	}
	return nil
}

func (r *Registry) indexLocked(doc *Document) int {
	return slices.Index(r.active, doc)
}

// releaseShare drops one owning share of doc. It is the only path that can
// destroy a document.
func (r *Registry) releaseShare(doc *Document, phase errors.Phase) (bool, error) {
	destroyed, err := r.arena.Release(doc.handle)
	if err != nil {
		if phase == errors.PhaseClose || phase == errors.PhaseShutdown {
			// The active set always holds a live share.
			inv := errors.New(phase, errors.KindInvariant).
				Type(doc.TypeName()).
				Value(doc.handle).
				Detail("active document has no registry share").
				Cause(err).
				Build()
			logging.Fatal(inv.Error(), zap.String("document", doc.id))
			return false, inv
		}
		return false, failed(errors.New(phase, errors.KindReleased).
			Type(doc.TypeName()).
			Value(doc.handle).
			Detail("document already destroyed").
			Cause(err).
			Build())
	}
	return destroyed, nil
}

// Documents returns a snapshot of the active set in insertion order.
func (r *Registry) Documents() []*Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.active)
}

// Len returns the size of the active set.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Contains reports whether doc is in the active set.
func (r *Registry) Contains(doc *Document) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexLocked(doc) >= 0
}

// Lookup finds an active document by its public ID.
func (r *Registry) Lookup(id string) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.active {
		if d.id == id {
			return d, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseLookup, "document", id)
}

// ShuttingDown reports whether Shutdown has been called.
func (r *Registry) ShuttingDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shutdown
}

// Shutdown rejects further creates and closes every active document.
// Calling it again is a no-op on an empty active set.
func (r *Registry) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shutdown = true
	docs := r.active
	r.active = nil

	var errs error
	for _, d := range docs {
		if _, err := r.releaseShare(d, errors.PhaseShutdown); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// close destroys every remaining document, including ones still held by
// callers, and stops the arena. Used when the engine itself is destroyed.
func (r *Registry) close() error {
	r.mu.Lock()
	r.shutdown = true
	r.active = nil
	r.mu.Unlock()
	return r.arena.Close()
}
