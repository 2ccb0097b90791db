package resource

import (
	"errors"
	"math"
	"sync"
)

var (
	ErrClosed        = errors.New("resource arena closed")
	ErrStaleHandle   = errors.New("stale or invalid resource handle")
	ErrNoShares      = errors.New("resource must be inserted with at least one share")
	ErrShareOverflow = errors.New("resource share count overflow")
)

// Arena stores values in reusable slots, each with an explicit owning-share
// count. A value is destroyed when its count reaches zero: the slot is
// invalidated, its generation advances, and the value's Drop (if any) runs
// exactly once.
type Arena[T any] struct {
	slots     []slot[T]
	freeList  []uint32
	observers []Observer
	live      int
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

type slot[T any] struct {
	value      T
	generation uint32
	shares     uint32
	valid      bool
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		slots:    make([]slot[T], 0, 16),
		freeList: make([]uint32, 0, 8),
	}
}

// Insert stores value with the given number of owning shares.
func (a *Arena[T]) Insert(value T, shares uint32) (Handle, error) {
	if shares == 0 {
		return Handle{}, ErrNoShares
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return Handle{}, ErrClosed
	}

	var idx uint32
	if n := len(a.freeList); n > 0 {
		idx = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}

	s := &a.slots[idx]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.value = value
	s.shares = shares
	s.valid = true
	a.live++
	h := Handle{Index: idx, Generation: s.generation}
	a.mu.Unlock()

	a.notify(Event{Type: EventCreated, Handle: h, Shares: shares, Value: value})
	return h, nil
}

// lookup returns the slot for h; caller must hold a.mu.
func (a *Arena[T]) lookup(h Handle) (*slot[T], bool) {
	if h.IsZero() || int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.valid || s.generation != h.Generation {
		return nil, false
	}
	return s, true
}

// Get retrieves the value for a live handle.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.lookup(h)
	if !ok {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Shares returns the owning-share count of a live handle.
func (a *Arena[T]) Shares(h Handle) (uint32, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.lookup(h)
	if !ok {
		return 0, false
	}
	return s.shares, true
}

// Retain adds one owning share.
func (a *Arena[T]) Retain(h Handle) error {
	a.mu.Lock()
	s, ok := a.lookup(h)
	if !ok {
		a.mu.Unlock()
		return ErrStaleHandle
	}
	if s.shares == math.MaxUint32 {
		a.mu.Unlock()
		return ErrShareOverflow
	}
	s.shares++
	e := Event{Type: EventRetained, Handle: h, Shares: s.shares, Value: s.value}
	a.mu.Unlock()

	a.notify(e)
	return nil
}

// Release removes one owning share. The decrement and the zero test happen
// under one lock acquisition; when the count reaches zero the value is
// destroyed and destroyed is true.
func (a *Arena[T]) Release(h Handle) (destroyed bool, err error) {
	a.mu.Lock()
	s, ok := a.lookup(h)
	if !ok {
		a.mu.Unlock()
		return false, ErrStaleHandle
	}

	s.shares--
	if s.shares > 0 {
		e := Event{Type: EventReleased, Handle: h, Shares: s.shares, Value: s.value}
		a.mu.Unlock()
		a.notify(e)
		return false, nil
	}

	value := a.invalidate(h.Index)
	a.mu.Unlock()

	a.destroy(h, value)
	return true, nil
}

// invalidate clears slot idx and returns its value; caller must hold a.mu.
func (a *Arena[T]) invalidate(idx uint32) T {
	s := &a.slots[idx]
	value := s.value
	var zero T
	s.value = zero
	s.shares = 0
	s.valid = false
	a.freeList = append(a.freeList, idx)
	a.live--
	return value
}

func (a *Arena[T]) destroy(h Handle, value T) {
	if d, ok := any(value).(Dropper); ok {
		d.Drop()
	}
	a.notify(Event{Type: EventDestroyed, Handle: h, Value: value})
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// Each iterates over live values in slot order. fn must not call back into
// the arena.
func (a *Arena[T]) Each(fn func(Handle, T) bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.slots {
		s := &a.slots[i]
		if !s.valid {
			continue
		}
		if !fn(Handle{Index: uint32(i), Generation: s.generation}, s.value) {
			return
		}
	}
}

// Close destroys every remaining value regardless of outstanding shares and
// rejects further inserts. It is safe to call more than once.
func (a *Arena[T]) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true

	type doomed struct {
		h     Handle
		value T
	}
	var pending []doomed
	for i := range a.slots {
		s := &a.slots[i]
		if !s.valid {
			continue
		}
		h := Handle{Index: uint32(i), Generation: s.generation}
		pending = append(pending, doomed{h: h, value: a.invalidate(uint32(i))})
	}
	a.mu.Unlock()

	for _, d := range pending {
		a.destroy(d.h, d.value)
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (a *Arena[T]) Subscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	a.observers = append(a.observers, o)
}

// Unsubscribe removes an observer.
func (a *Arena[T]) Unsubscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	for i, obs := range a.observers {
		if obs == o {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return
		}
	}
}

func (a *Arena[T]) notify(e Event) {
	a.obsMu.RLock()
	defer a.obsMu.RUnlock()
	for _, o := range a.observers {
		o.OnResourceEvent(e)
	}
}
