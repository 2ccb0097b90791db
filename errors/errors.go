package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which engine operation produced the error
type Phase string

const (
	PhaseAcquire  Phase = "acquire"  // engine handle lifecycle
	PhaseCreate   Phase = "create"   // document construction
	PhaseClose    Phase = "close"    // registry share removal
	PhaseRelease  Phase = "release"  // owning share release
	PhaseShutdown Phase = "shutdown" // engine shutdown
	PhaseClone    Phase = "clone"    // object duplication
	PhaseDiag     Phase = "diag"     // instance diagnostics
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseAssert   Phase = "assert"   // checked assertions
	PhaseLookup   Phase = "lookup"   // registry queries
	PhaseEnv      Phase = "env"      // engine environment
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindPrecondition    Kind = "precondition"
	KindNotFound        Kind = "not_found"
	KindUnsupported     Kind = "unsupported"
	KindReleased        Kind = "released"
	KindInvariant       Kind = "invariant"
	KindInvalidData     Kind = "invalid_data"
)

// Error is the structured error type used throughout the engine
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the object path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the runtime type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Sentinels for errors.Is checks that only care about the kind.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrPrecondition    = &Error{Kind: KindPrecondition}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnsupported     = &Error{Kind: KindUnsupported}
	ErrReleased        = &Error{Kind: KindReleased}
	ErrInvariant       = &Error{Kind: KindInvariant}
)

// Convenience constructors for common error patterns

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// Precondition creates a precondition failure error
func Precondition(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPrecondition,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unsupported creates an unsupported capability error for a runtime type
func Unsupported(phase Phase, typeName, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Type:   typeName,
		Detail: what,
	}
}

// Released creates an error for use of an already released handle or share
func Released(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReleased,
		Detail: fmt.Sprintf("%s already released", what),
	}
}

// Invariant creates an internal invariant violation error
func Invariant(phase Phase, typeName, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Type:   typeName,
		Detail: detail,
	}
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
