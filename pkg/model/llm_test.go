package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGeneratorOptsDefaults(t *testing.T) {
	cfg := ResolveGeneratorOpts()

	assert.Empty(t, cfg.URL)
	assert.Empty(t, cfg.AuthToken)
	assert.Nil(t, cfg.Temperature)
	assert.Nil(t, cfg.MaxTokens)
	assert.Nil(t, cfg.Model)
}

func TestResolveGeneratorOptsAppliesAll(t *testing.T) {
	cfg := ResolveGeneratorOpts(
		WithURL("https://example.test/v1"),
		WithAuthToken("token"),
		WithTemperature(0.7),
		WithMaxTokens(1024),
		WithModel("some-model"),
	)

	assert.Equal(t, "https://example.test/v1", cfg.URL)
	assert.Equal(t, "token", cfg.AuthToken)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 0.0001)
	require.NotNil(t, cfg.MaxTokens)
	assert.Equal(t, 1024, *cfg.MaxTokens)
	require.NotNil(t, cfg.Model)
	assert.Equal(t, "some-model", *cfg.Model)
}

func TestResolveGeneratorOptsLastWins(t *testing.T) {
	cfg := ResolveGeneratorOpts(
		WithModel("first"),
		WithModel("second"),
	)

	require.NotNil(t, cfg.Model)
	assert.Equal(t, "second", *cfg.Model)
}

func TestResolveGeneratorOptsSkipsNil(t *testing.T) {
	cfg := ResolveGeneratorOpts(nil, WithAuthToken("token"), nil)

	assert.Equal(t, "token", cfg.AuthToken)
}
