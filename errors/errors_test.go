package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Phase: PhaseCreate, Kind: KindPrecondition},
			want: "[create] precondition",
		},
		{
			name: "with detail",
			err:  Precondition(PhaseCreate, "engine is shutting down"),
			want: "[create] precondition: engine is shutting down",
		},
		{
			name: "with type and detail",
			err:  Unsupported(PhaseClone, "Widget", "clone"),
			want: "[clone] unsupported: type Widget - clone",
		},
		{
			name: "with path",
			err:  &Error{Phase: PhaseDiag, Kind: KindInvariant, Path: []string{"counts", "Document"}},
			want: "[diag] invariant at counts.Document",
		},
		{
			name: "with cause",
			err:  Config("read file", errors.New("boom")),
			want: "[config] invalid_data: read file (caused by: boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := InvalidArgument(PhaseClose, "not active")

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, errors.Is(err, &Error{Phase: PhaseClose, Kind: KindInvalidArgument}))
	assert.False(t, errors.Is(err, &Error{Phase: PhaseCreate, Kind: KindInvalidArgument}))
	assert.False(t, errors.Is(err, ErrPrecondition))
	assert.False(t, errors.Is(err, errors.New("other")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := New(PhaseShutdown, KindPrecondition).Cause(cause).Build()

	assert.True(t, errors.Is(err, cause))

	var target *Error
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, KindPrecondition, target.Kind)
}

func TestBuilder(t *testing.T) {
	cause := errors.New("cause")
	err := New(PhaseClose, KindInvalidArgument).
		Path("registry", "active").
		Type("Document").
		Value(7).
		Cause(cause).
		Detail("handle %d is stale", 7).
		Build()

	assert.Equal(t, PhaseClose, err.Phase)
	assert.Equal(t, KindInvalidArgument, err.Kind)
	assert.Equal(t, []string{"registry", "active"}, err.Path)
	assert.Equal(t, "Document", err.Type)
	assert.Equal(t, 7, err.Value)
	assert.Equal(t, "handle 7 is stale", err.Detail)
	assert.ErrorIs(t, err, cause)
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseClose, "document", "abc")
		assert.Equal(t, KindNotFound, err.Kind)
		assert.Contains(t, err.Detail, `"abc"`)
	})

	t.Run("Released", func(t *testing.T) {
		err := Released(PhaseRelease, "engine handle")
		assert.Equal(t, KindReleased, err.Kind)
		assert.ErrorIs(t, err, ErrReleased)
	})

	t.Run("Invariant", func(t *testing.T) {
		err := Invariant(PhaseDiag, "Document", "current count would go negative")
		assert.Equal(t, "Document", err.Type)
		assert.ErrorIs(t, err, ErrInvariant)
	})
}
