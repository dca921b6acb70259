package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := New(KindSessionNotFound, "registry.Get", "Interview session not found")
	wrapped := fmt.Errorf("continue: %w", base)

	assert.Equal(t, KindSessionNotFound, KindOf(base))
	assert.Equal(t, KindSessionNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindSessionNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(KindProvider, "op", nil, "msg"))

	cause := errors.New("connection reset")
	err := Wrap(KindProvider, "openai.Complete", cause, "completion failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "openai.Complete: completion failed: connection reset", err.Error())
	assert.Equal(t, "completion failed", Message(err))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
