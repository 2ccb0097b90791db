// Package engine provides the process-wide coordinator, its document
// registry and its instance diagnostics.
//
// # Architecture
//
// The engine package provides four main types:
//
//	Handle      - One shared reference to the engine (acquire/release/shutdown)
//	Registry    - The active set of documents (create/close/enumerate)
//	Document    - A content unit with shared ownership
//	DocumentRef - One caller-held owning share of a Document
//
// # Engine Lifetime
//
//  1. Acquire() creates the engine on first use and returns a Handle
//  2. Further Acquire() calls return handles to the same instance while any
//     handle is outstanding
//  3. Shutdown() closes every active document and rejects new ones; handles
//     stay valid
//  4. Releasing the last handle destroys the instance, logs a leak report and
//     frees whatever the registry still holds
//
// A later Acquire() starts a new instance with empty diagnostics.
//
// # Document Ownership
//
// A new document has two owning shares: the registry's and the returned
// DocumentRef. The two are released independently:
//
//	ref, _ := h.CreateDocument()     // shares: registry + ref
//	h.CloseDocument(ref.Document())  // leaves the active set; ref keeps it alive
//	ref.Release()                    // last share: destroyed, diagnostics decremented
//
// Releasing a DocumentRef never changes the active set; only CloseDocument
// (or Shutdown) does. Destruction happens exactly once, when the last share
// goes away, and that is the only point where the diagnostics count drops.
//
// # Diagnostics
//
//	c := h.ObjectCount("Document")
//	fmt.Println(c.Current, c.Peak, c.Total)
//
// Counts are per engine instance.
//
// # Errors
//
// Precondition failures return *errors.Error values. When asserts are enabled
// in the logging package they abort the process instead.
package engine
