package backend

import (
	"testing"

	"github.com/deckward-ai/deckward/internal/config"
	"github.com/deckward-ai/deckward/internal/flashcard"
	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFireworks(t *testing.T) {
	be, err := Select(config.Config{Provider: config.ProviderFireworks, APIKey: "fw-key"})

	require.NoError(t, err)
	assert.NotNil(t, be.NewText)
	assert.NotNil(t, be.NewVisionOCR)
	assert.NotNil(t, be.NewAudio)
	assert.NotNil(t, be.NewCardSet)
}

func TestSelectGemini(t *testing.T) {
	be, err := Select(config.Config{Provider: config.ProviderGemini, APIKey: "gm-key"})

	require.NoError(t, err)
	assert.NotNil(t, be.NewText)
	assert.NotNil(t, be.NewCardSet)
}

func TestSelectUnknownProvider(t *testing.T) {
	_, err := Select(config.Config{Provider: "watsonx"})

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}

func TestBindBackendInjectsCredentialsIntoOptions(t *testing.T) {
	var captured model.GeneratorConfig
	cfg := config.Config{Provider: config.ProviderFireworks, APIKey: "secret", Model: "custom-model"}

	be := bindBackend(cfg,
		func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[string], error) {
			captured = model.ResolveGeneratorOpts(opts...)
			return nil, nil
		},
		func(imagePath string, opts model.VisionOptions) (model.ContentGenerator[string], error) {
			return nil, nil
		},
		func(audioPath string, opts model.AudioOptions) (model.ContentGenerator[string], error) {
			return nil, nil
		},
		func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[flashcard.Set], error) {
			captured = model.ResolveGeneratorOpts(opts...)
			return nil, nil
		},
	)

	_, err := be.NewText("prompt")
	require.NoError(t, err)
	assert.Equal(t, "secret", captured.AuthToken)
	require.NotNil(t, captured.Model)
	assert.Equal(t, "custom-model", *captured.Model)

	captured = model.GeneratorConfig{}
	_, err = be.NewCardSet("prompt")
	require.NoError(t, err)
	assert.Equal(t, "secret", captured.AuthToken)
}

func TestBindBackendCallerOptionsWin(t *testing.T) {
	var captured model.GeneratorConfig
	cfg := config.Config{Provider: config.ProviderFireworks, APIKey: "secret", Model: "default-model"}

	be := bindBackend(cfg,
		func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[string], error) {
			captured = model.ResolveGeneratorOpts(opts...)
			return nil, nil
		},
		nil, nil,
		func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[flashcard.Set], error) {
			return nil, nil
		},
	)

	_, err := be.NewText("prompt", model.WithModel("override-model"))
	require.NoError(t, err)
	require.NotNil(t, captured.Model)
	assert.Equal(t, "override-model", *captured.Model)
}

func TestBindBackendInjectsCredentialsIntoVisionAndAudio(t *testing.T) {
	var visionToken, audioToken string
	cfg := config.Config{Provider: config.ProviderFireworks, APIKey: "secret"}

	be := bindBackend(cfg,
		func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[string], error) {
			return nil, nil
		},
		func(imagePath string, opts model.VisionOptions) (model.ContentGenerator[string], error) {
			visionToken = opts.AuthToken
			return nil, nil
		},
		func(audioPath string, opts model.AudioOptions) (model.ContentGenerator[string], error) {
			audioToken = opts.AuthToken
			return nil, nil
		},
		func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[flashcard.Set], error) {
			return nil, nil
		},
	)

	_, err := be.NewVisionOCR("notes.png", model.VisionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "secret", visionToken)

	_, err = be.NewAudio("lecture.mp3", model.AudioOptions{})
	require.NoError(t, err)
	assert.Equal(t, "secret", audioToken)
}
