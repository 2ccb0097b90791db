package resource

import "fmt"

// Handle addresses a slot in an Arena. The generation changes every time a
// slot is reused, so a handle to a destroyed value never aliases a new one.
// The zero Handle is always invalid.
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.Generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Index, h.Generation)
}

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventRetained
	EventReleased
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event represents a resource lifecycle event.
// Shares is the owning-share count after the operation.
type Event struct {
	Value  any
	Handle Handle
	Shares uint32
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
// Observers run after the arena lock is released.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is optionally implemented by values that need cleanup when their
// last owning share is released.
type Dropper interface {
	Drop()
}
