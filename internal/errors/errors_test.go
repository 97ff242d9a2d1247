package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return "coded" }

func TestAsType(t *testing.T) {
	err := Wrap(&codedError{code: 7}, "outer")

	got, ok := AsType[*codedError](err)
	assert.True(t, ok)
	assert.Equal(t, 7, got.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)
}

func TestStackTrace(t *testing.T) {
	assert.Empty(t, StackTrace(New("plain")))
	assert.Empty(t, StackTrace(nil))

	trace := StackTrace(Wrap(New("plain"), "with stack"))
	assert.Contains(t, trace, "TestStackTrace")
}
