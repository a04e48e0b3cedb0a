package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := Error(EINVALID, "heading size %d is not positive", -3)
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "heading size -3 is not positive", UserMessage(err))
	assert.Contains(t, err.Error(), "[123]")
}

func TestWrappedErrorChain(t *testing.T) {
	base := errors.New("connection refused")
	err := WrapError(base, ECONNECTION, "cannot fetch %s", "http://example.org/a.png")
	wrapped := fmt.Errorf("image: %w", err)
	assert.Equal(t, ECONNECTION, Code(wrapped))
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, "cannot fetch http://example.org/a.png", UserMessage(wrapped))
}

func TestPlainErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	plain := errors.New("boom")
	assert.Equal(t, EINTERNAL, Code(plain))
	assert.Equal(t, "internal error", UserMessage(plain))
	assert.Equal(t, EUNSUPPORTED, Code(WrapError(nil, EUNSUPPORTED, "svg")))
}
