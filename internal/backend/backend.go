package backend

import (
	"fmt"

	"github.com/deckward-ai/deckward/internal/config"
	"github.com/deckward-ai/deckward/internal/flashcard"
	"github.com/deckward-ai/deckward/pkg/llms/fireworks"
	"github.com/deckward-ai/deckward/pkg/llms/gemini"
	"github.com/deckward-ai/deckward/pkg/model"
)

// Backend bundles the generator factories for one configured provider,
// pre-bound with the process credentials and model override. The extractor
// and synthesizer consume these funcs and never know which provider serves them.
type Backend struct {
	NewText      model.NewStringContentGeneratorFunc
	NewVisionOCR model.NewVisionOCRGeneratorFunc
	NewAudio     model.NewAudioTranscriptionGeneratorFunc
	NewCardSet   model.NewStructureContentGeneratorFunc[flashcard.Set]
}

// Select maps the configured provider to its factory bundle.
func Select(cfg config.Config) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderFireworks:
		return bindBackend(cfg, fireworks.NewStringContentGenerator, fireworks.NewVisionOCRGenerator, fireworks.NewAudioTranscriptionGenerator, fireworks.NewStructureContentGenerator[flashcard.Set]), nil
	case config.ProviderGemini:
		return bindBackend(cfg, gemini.NewStringContentGenerator, gemini.NewVisionOCRGenerator, gemini.NewAudioTranscriptionGenerator, gemini.NewStructureContentGenerator[flashcard.Set]), nil
	default:
		return Backend{}, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

func bindBackend(
	cfg config.Config,
	newText model.NewStringContentGeneratorFunc,
	newVision model.NewVisionOCRGeneratorFunc,
	newAudio model.NewAudioTranscriptionGeneratorFunc,
	newCardSet model.NewStructureContentGeneratorFunc[flashcard.Set],
) Backend {
	return Backend{
		NewText: func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[string], error) {
			return newText(prompt, append(defaultOpts(cfg), opts...)...)
		},
		NewVisionOCR: func(imagePath string, opts model.VisionOptions) (model.ContentGenerator[string], error) {
			opts.AuthToken = cfg.APIKey
			return newVision(imagePath, opts)
		},
		NewAudio: func(audioPath string, opts model.AudioOptions) (model.ContentGenerator[string], error) {
			opts.AuthToken = cfg.APIKey
			return newAudio(audioPath, opts)
		},
		NewCardSet: func(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[flashcard.Set], error) {
			return newCardSet(prompt, append(defaultOpts(cfg), opts...)...)
		},
	}
}

func defaultOpts(cfg config.Config) []model.GeneratorOption {
	opts := []model.GeneratorOption{model.WithAuthToken(cfg.APIKey)}
	if cfg.Model != "" {
		opts = append(opts, model.WithModel(cfg.Model))
	}
	return opts
}
