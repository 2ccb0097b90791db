package engine

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/wippyai/lxengine/errors"
	"github.com/wippyai/lxengine/object"
	"github.com/wippyai/lxengine/resource"
)

// Document is a content unit owned jointly by the registry and by any number
// of DocumentRefs. It is destroyed when the last owning share is released.
type Document struct {
	object.Base

	tracker  object.Tracker
	registry *Registry
	props    map[string]string
	id       string
	title    string
	handle   resource.Handle
	mu       sync.RWMutex
	dead     atomic.Bool
}

func newDocument(tracker object.Tracker) *Document {
	d := &Document{
		tracker: tracker,
		id:      uuid.NewString(),
		props:   make(map[string]string),
	}
	d.Init(d)
	object.Construct(tracker, d)
	return d
}

// ID returns the document's stable public identifier.
func (d *Document) ID() string { return d.id }

// Handle returns the document's arena identity.
func (d *Document) Handle() resource.Handle { return d.handle }

// Alive reports whether the document still has an owning share.
func (d *Document) Alive() bool { return !d.dead.Load() }

func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	d.title = title
	d.mu.Unlock()
}

// Property returns a content property.
func (d *Document) Property(key string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.props[key]
	return v, ok
}

func (d *Document) SetProperty(key, value string) {
	d.mu.Lock()
	d.props[key] = value
	d.mu.Unlock()
}

// Properties returns a copy of all content properties.
func (d *Document) Properties() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.props)
}

// Clone returns an unregistered duplicate with its own identity and a copy of
// the content. The duplicate is counted by diagnostics as soon as it exists.
func (d *Document) Clone() (object.Object, error) {
	if !d.Alive() {
		return nil, errors.New(errors.PhaseClone, errors.KindPrecondition).
			Type(d.TypeName()).
			Value(d.id).
			Detail("document already destroyed").
			Build()
	}
	dup := newDocument(d.tracker)
	d.mu.RLock()
	dup.title = d.title
	maps.Copy(dup.props, d.props)
	d.mu.RUnlock()
	return dup, nil
}

// Drop is called by the arena when the last owning share is released.
func (d *Document) Drop() {
	if d.dead.CompareAndSwap(false, true) {
		object.Destruct(d.tracker, d)
	}
}

// DocumentRef is one owning share of a Document held outside the registry.
// Each ref must be released exactly once.
type DocumentRef struct {
	doc      *Document
	released atomic.Bool
}

// Document returns the shared document. The pointer stays usable as an
// identity after the ref is released.
func (r *DocumentRef) Document() *Document { return r.doc }

// ID returns the document's public identifier.
func (r *DocumentRef) ID() string { return r.doc.id }

// Released reports whether Release has been called.
func (r *DocumentRef) Released() bool { return r.released.Load() }

// UseCount returns the number of live owning shares of the document,
// including the registry's, or 0 once it has been destroyed.
func (r *DocumentRef) UseCount() int {
	n, ok := r.doc.registry.arena.Shares(r.doc.handle)
	if !ok {
		return 0
	}
	return int(n)
}

// Retain returns a new independent share of the same document.
func (r *DocumentRef) Retain() (*DocumentRef, error) {
	if r.released.Load() {
		return nil, errors.Released(errors.PhaseRelease, "document reference")
	}
	if err := r.doc.registry.arena.Retain(r.doc.handle); err != nil {
		return nil, errors.New(errors.PhaseRelease, errors.KindReleased).
			Type(r.doc.TypeName()).
			Value(r.doc.handle).
			Cause(err).
			Build()
	}
	return &DocumentRef{doc: r.doc}, nil
}

// Release drops this share. It never changes registry membership; when it is
// the last share the document is destroyed before Release returns.
func (r *DocumentRef) Release() error {
	if !r.released.CompareAndSwap(false, true) {
		return failed(errors.Released(errors.PhaseRelease, "document reference"))
	}
	_, err := r.doc.registry.releaseShare(r.doc, errors.PhaseRelease)
	return err
}
