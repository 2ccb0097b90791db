// Package errors provides structured error types for the engine.
//
// Errors are categorized by Phase (which operation failed) and Kind (error category).
// The Error type carries the runtime type name, an object path, the offending
// value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseClose, errors.KindInvalidArgument).
//		Type("Document").
//		Value(handle).
//		Detail("document is not in the active set").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Precondition(errors.PhaseCreate, "engine is shutting down")
//	err := errors.Released(errors.PhaseRelease, "document reference")
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match on Kind regardless of Phase:
//
//	if errors.Is(err, lxerrors.ErrPrecondition) { ... }
package errors
