package model

// AudioOptions configures audio transcription generators.
type AudioOptions struct {
	URL       string
	AuthToken string
	Model     string
	// Language constrains transcription to a single language code (e.g. "en").
	// Providers that cannot constrain language may ignore it.
	Language string
	// Prompt optionally overrides the provider's default transcription prompt.
	Prompt string
}
