// Package resource provides a generational arena of shared-ownership slots.
//
// Each value lives in a slot addressed by a Handle (index, generation) and
// carries an explicit owning-share count. Every holder of a share is
// responsible for releasing it exactly once; the value is destroyed when the
// last share is released.
//
// # Lifecycle
//
//	insert  - store a value with N initial shares
//	retain  - add a share (a new independent owner)
//	release - drop a share; the last release destroys the value
//
// # Arena
//
//	arena := resource.NewArena[*Document]()
//
//	// Insert with two shares: one for the registry, one for the caller
//	h, err := arena.Insert(doc, 2)
//
//	// Retrieve value by handle
//	doc, ok := arena.Get(h)
//
//	// Release a share; destroyed reports whether it was the last one
//	destroyed, err := arena.Release(h)
//
// # Handles
//
// Slots are reused after destruction. The slot's generation advances on every
// reuse, so a stale handle fails with ErrStaleHandle instead of resolving to
// an unrelated value. The zero Handle is never valid.
//
// # Destruction
//
// Values implementing Dropper have Drop called exactly once, after the arena
// lock is released, when their last share goes away (or on Close).
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	arena.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    if e.Type == resource.EventDestroyed {
//	        log.Printf("resource %s destroyed", e.Handle)
//	    }
//	}))
//
// Observers registered as ObserverFunc cannot be passed to Unsubscribe;
// use a pointer type when removal is needed.
package resource
