// Package object defines the base capability unit tracked by instance
// diagnostics.
//
// Every concrete object is reported to a Tracker once when constructed and
// once when destroyed, keyed by its exact runtime type name. Duplication is
// an optional capability: types that support it implement Cloner.
package object

import (
	"reflect"

	"github.com/wippyai/lxengine/errors"
)

// Object is any value the engine tracks.
type Object interface {
	// TypeName returns the diagnostics key for the concrete type.
	TypeName() string
}

// Cloner is implemented by objects that can produce an independently owned
// duplicate. The duplicate shares no mutable state with its source.
type Cloner interface {
	Object
	Clone() (Object, error)
}

// Tracker receives construction and destruction events.
type Tracker interface {
	Inc(typeName string)
	Dec(typeName string)
}

// ErrNotCloneable is returned by Clone for types without the capability.
var ErrNotCloneable = &errors.Error{Phase: errors.PhaseClone, Kind: errors.KindUnsupported}

// Clone duplicates o when it implements Cloner.
func Clone(o Object) (Object, error) {
	c, ok := o.(Cloner)
	if !ok {
		return nil, errors.Unsupported(errors.PhaseClone, o.TypeName(), "type does not implement clone")
	}
	return c.Clone()
}

// CanClone reports whether o supports duplication.
func CanClone(o Object) bool {
	_, ok := o.(Cloner)
	return ok
}

// Construct reports o to t. It must be called exactly once per instance.
func Construct(t Tracker, o Object) {
	if t != nil {
		t.Inc(o.TypeName())
	}
}

// Destruct reports the destruction of o to t. It must be called exactly once
// per instance, after Construct.
func Destruct(t Tracker, o Object) {
	if t != nil {
		t.Dec(o.TypeName())
	}
}

// NameOf returns the runtime type name of v with pointer indirections removed.
// Unnamed types fall back to their type literal.
func NameOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// Base can be embedded to derive TypeName from the outer type.
// The embedding type passes itself so the name reflects the concrete type.
type Base struct {
	name string
}

// Init records the type name of self. Call it from the constructor.
func (b *Base) Init(self any) {
	b.name = NameOf(self)
}

func (b *Base) TypeName() string {
	return b.name
}
