package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Predicates(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantNotFound    bool
		wantUnreachable bool
		wantMalformed   bool
	}{
		{"not found", NewError("s2", NotFound, nil), true, false, false},
		{"unreachable", NewError("s2", Unreachable, errors.New("dial tcp")), false, true, false},
		{"malformed", Errorf("crossref", Malformed, "missing title"), false, false, true},
		{"wrapped", fmt.Errorf("resolving: %w", NewError("s2", NotFound, nil)), true, false, false},
		{"plain error", errors.New("boom"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.wantUnreachable, IsUnreachable(tt.err))
			assert.Equal(t, tt.wantMalformed, IsMalformed(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "s2: not_found", NewError("s2", NotFound, nil).Error())
	assert.Equal(t, "crossref: malformed: missing title",
		Errorf("crossref", Malformed, "missing title").Error())
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError("s2", Unreachable, cause)
	assert.ErrorIs(t, err, cause)
}

func TestFromTransport_Timeout(t *testing.T) {
	err := FromTransport("s2", fmt.Errorf("Get: %w", context.DeadlineExceeded))
	assert.Equal(t, Unreachable, err.Kind)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestClassify(t *testing.T) {
	orig := NewError("crossref", Malformed, nil)
	got := Classify("other", fmt.Errorf("wrapped: %w", orig))
	require.Same(t, orig, got)

	got = Classify("s2", errors.New("panic-free surprise"))
	assert.Equal(t, "s2", got.Source)
	assert.Equal(t, Unreachable, got.Kind)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "unreachable", Unreachable.String())
	assert.Equal(t, "malformed", Malformed.String())
	assert.Equal(t, "kind(0)", Kind(0).String())

	text, err := Malformed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "malformed", string(text))
}

func TestKind_UnmarshalText(t *testing.T) {
	for _, k := range []Kind{NotFound, Unreachable, Malformed} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got Kind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("exploded")))
}
