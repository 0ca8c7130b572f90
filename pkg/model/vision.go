package model

// VisionOptions configures vision OCR generators.
type VisionOptions struct {
	URL       string
	AuthToken string
	Model     string
	// Prompt optionally overrides the provider's default OCR prompt.
	Prompt string
}
