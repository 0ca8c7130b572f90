package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Provider identifies which hosted backend serves generation, vision, and
// transcription calls for the whole session.
type Provider string

const (
	ProviderFireworks Provider = "fireworks"
	ProviderGemini    Provider = "gemini"
)

var (
	// ErrMissingAPIKey aborts startup; every pipeline stage needs the key.
	ErrMissingAPIKey = errors.New("missing API key for the configured provider")

	// ErrUnknownProvider is returned for an unrecognized DECKWARD_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Config is the process-wide immutable configuration, loaded once at startup
// and passed explicitly into every service-calling component.
type Config struct {
	Provider Provider
	APIKey   string
	// Model optionally overrides the provider's default generation model.
	Model string
}

// Load reads .env (if present, without overriding the real environment) and
// validates the configured provider's credentials. It fails fast so a missing
// key surfaces before any interactive prompt.
func Load() (Config, error) {
	// Real environment wins over .env values.
	_ = godotenv.Load()

	providerName := strings.TrimSpace(os.Getenv("DECKWARD_PROVIDER"))
	if providerName == "" {
		providerName = string(ProviderFireworks)
	}

	cfg := Config{
		Model: strings.TrimSpace(os.Getenv("DECKWARD_MODEL")),
	}

	switch Provider(strings.ToLower(providerName)) {
	case ProviderFireworks:
		cfg.Provider = ProviderFireworks
		cfg.APIKey = strings.TrimSpace(os.Getenv("FIREWORKS_API_KEY"))
		if cfg.APIKey == "" {
			return Config{}, fmt.Errorf("%w: FIREWORKS_API_KEY is not set", ErrMissingAPIKey)
		}
	case ProviderGemini:
		cfg.Provider = ProviderGemini
		cfg.APIKey = strings.TrimSpace(os.Getenv("GEMINI_KEY"))
		if cfg.APIKey == "" {
			return Config{}, fmt.Errorf("%w: GEMINI_KEY is not set", ErrMissingAPIKey)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownProvider, providerName)
	}

	return cfg, nil
}
