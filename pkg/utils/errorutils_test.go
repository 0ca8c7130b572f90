package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapIfNotNilPassesNilThrough(t *testing.T) {
	assert.NoError(t, WrapIfNotNil(nil))
	assert.NoError(t, WrapIfNotNil(nil, "extra context"))
}

func TestWrapIfNotNilKeepsTheChain(t *testing.T) {
	sentinel := errors.New("sentinel")

	wrapped := WrapIfNotNil(fmt.Errorf("outer: %w", sentinel))

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, sentinel)
}

func TestWrapIfNotNilAppendsContext(t *testing.T) {
	wrapped := WrapIfNotNil(errors.New("boom"), "while testing")

	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "boom")
	assert.Contains(t, wrapped.Error(), "while testing")
}

func TestContainsErrorSubstring(t *testing.T) {
	err := errors.New("response_json_schema is not supported for this model")

	assert.True(t, ContainsErrorSubstring(err, "response_json_schema"))
	assert.False(t, ContainsErrorSubstring(err, "quota"))
	assert.False(t, ContainsErrorSubstring(nil, "anything"))
}
