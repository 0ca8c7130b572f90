package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("DECKWARD_PROVIDER", "")
	t.Setenv("DECKWARD_MODEL", "")
	t.Setenv("FIREWORKS_API_KEY", "")
	t.Setenv("GEMINI_KEY", "")
}

func TestLoadDefaultsToFireworks(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREWORKS_API_KEY", "fw-test-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ProviderFireworks, cfg.Provider)
	assert.Equal(t, "fw-test-key", cfg.APIKey)
	assert.Empty(t, cfg.Model)
}

func TestLoadFailsFastWithoutFireworksKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "FIREWORKS_API_KEY")
}

func TestLoadGeminiProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("DECKWARD_PROVIDER", "gemini")
	t.Setenv("GEMINI_KEY", "gm-test-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gm-test-key", cfg.APIKey)
}

func TestLoadGeminiRequiresItsOwnKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DECKWARD_PROVIDER", "gemini")
	t.Setenv("FIREWORKS_API_KEY", "fw-test-key")

	_, err := Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "GEMINI_KEY")
}

func TestLoadProviderNameIsCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("DECKWARD_PROVIDER", "Fireworks")
	t.Setenv("FIREWORKS_API_KEY", "fw-test-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ProviderFireworks, cfg.Provider)
}

func TestLoadUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("DECKWARD_PROVIDER", "watsonx")

	_, err := Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestLoadCarriesModelOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREWORKS_API_KEY", "fw-test-key")
	t.Setenv("DECKWARD_MODEL", "accounts/fireworks/models/llama-v3p1-70b-instruct")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "accounts/fireworks/models/llama-v3p1-70b-instruct", cfg.Model)
}
