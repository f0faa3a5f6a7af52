package textextract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend lets tests script backend behavior without real PDF bytes.
type fakeBackend struct {
	name  string
	text  string
	err   error
	panic bool
	calls *int
}

func (f fakeBackend) Name() string { return f.name }

func (f fakeBackend) Extract(data []byte) (string, error) {
	if f.calls != nil {
		*f.calls++
	}
	if f.panic {
		panic("corrupt xref table")
	}
	return f.text, f.err
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("primary backend wins when it yields text", func(t *testing.T) {
		var primaryCalls, fallbackCalls int
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", text: "Proforma Invoice\n", calls: &primaryCalls},
			fakeBackend{name: "fallback", text: "should not run", calls: &fallbackCalls},
		)

		text, err := e.Extract([]byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "Proforma Invoice\n", text)
		assert.Equal(t, 1, primaryCalls)
		assert.Equal(t, 0, fallbackCalls)
	})

	t.Run("falls back when primary yields blank text", func(t *testing.T) {
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", text: "   \n\t"},
			fakeBackend{name: "fallback", text: "PI No: 1765632\n"},
		)

		text, err := e.Extract([]byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "PI No: 1765632\n", text)
	})

	t.Run("falls back when primary errors", func(t *testing.T) {
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", err: errors.New("bad trailer")},
			fakeBackend{name: "fallback", text: "recovered text"},
		)

		text, err := e.Extract([]byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "recovered text", text)
	})

	t.Run("recovers backend panics", func(t *testing.T) {
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", panic: true},
			fakeBackend{name: "fallback", text: "still works"},
		)

		text, err := e.Extract([]byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "still works", text)
	})

	t.Run("composed error names both backends", func(t *testing.T) {
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", err: errors.New("bad trailer")},
			fakeBackend{name: "fallback", text: ""},
		)

		_, err := e.Extract([]byte("%PDF"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "primary: bad trailer")
		assert.Contains(t, err.Error(), "fallback: no text found in PDF")
	})

	t.Run("all backends blank wraps ErrNoText", func(t *testing.T) {
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", text: "   "},
			fakeBackend{name: "fallback", text: ""},
		)

		_, err := e.Extract([]byte("%PDF"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoText)
	})

	t.Run("hard failure does not wrap ErrNoText", func(t *testing.T) {
		e := NewWithBackends(nil,
			fakeBackend{name: "primary", err: errors.New("bad trailer")},
			fakeBackend{name: "fallback", text: ""},
		)

		_, err := e.Extract([]byte("%PDF"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoText)
	})

	t.Run("no backends configured", func(t *testing.T) {
		e := NewWithBackends(nil)
		_, err := e.Extract([]byte("%PDF"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no PDF extraction backend available")
	})
}

func TestExtractor_RealBackendsRejectGarbage(t *testing.T) {
	e := New(nil)
	_, err := e.Extract([]byte("this is not a pdf at all"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "ledongthuc") &&
		strings.Contains(err.Error(), "dslipak"),
		"error should name both backends: %v", err)
}
