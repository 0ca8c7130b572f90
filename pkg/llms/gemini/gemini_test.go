package gemini

import (
	"testing"

	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestResolveGenerationModelName(t *testing.T) {
	assert.Equal(t, defaultGenerationModelName, resolveGenerationModelName(model.GeneratorConfig{}))

	custom := "gemini-2.5-pro"
	assert.Equal(t, custom, resolveGenerationModelName(model.GeneratorConfig{Model: &custom}))

	blank := "  "
	assert.Equal(t, defaultGenerationModelName, resolveGenerationModelName(model.GeneratorConfig{Model: &blank}))
}

func TestResolveAudioMIMEType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		wantErr  bool
	}{
		{path: "lecture.mp3", expected: "audio/mpeg"},
		{path: "LECTURE.WAV", expected: "audio/wav"},
		{path: "memo.m4a", expected: "audio/mp4"},
		{path: "clip.ogg", expected: "audio/ogg"},
		{path: "noextension", wantErr: true},
		{path: "notes.txt", wantErr: true},
	}

	for _, tc := range tests {
		mimeType, err := resolveAudioMIMEType(tc.path)
		if tc.wantErr {
			assert.Error(t, err, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.expected, mimeType, tc.path)
	}
}

func TestResolveImageMIMEType(t *testing.T) {
	mimeType, err := resolveImageMIMEType("scan.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)

	_, err = resolveImageMIMEType("scan.mp3")
	assert.Error(t, err)
}

func TestBuildAudioTranscriptionPrompt(t *testing.T) {
	assert.Equal(t, "custom prompt", buildAudioTranscriptionPrompt(model.AudioOptions{Prompt: "custom prompt"}))

	withLanguage := buildAudioTranscriptionPrompt(model.AudioOptions{Language: "en"})
	assert.Contains(t, withLanguage, "language code en")

	plain := buildAudioTranscriptionPrompt(model.AudioOptions{})
	assert.Contains(t, plain, "Transcribe this audio")
	assert.NotContains(t, plain, "language code")
}

func TestBuildContentsWithContext(t *testing.T) {
	contexts := []*model.PromptContext{
		{MessageType: model.ContextMessageTypeSystem, Content: "You are terse."},
		{MessageType: model.ContextMessageTypeSystem, Content: "Answer in English."},
		{MessageType: model.ContextMessageTypeAssistant, Content: "Understood."},
		nil,
		{MessageType: model.ContextMessageTypeHuman, Content: ""},
	}

	systemInstruction, contents, contextCount := buildContentsWithContext("the prompt", contexts)

	assert.Equal(t, 3, contextCount)
	require.NotNil(t, systemInstruction)
	require.Len(t, systemInstruction.Parts, 1)
	assert.Contains(t, systemInstruction.Parts[0].Text, "You are terse.")
	assert.Contains(t, systemInstruction.Parts[0].Text, "Answer in English.")

	// assistant context plus the prompt.
	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleModel, contents[0].Role)
	assert.Equal(t, genai.RoleUser, contents[1].Role)
	require.Len(t, contents[1].Parts, 1)
	assert.Equal(t, "the prompt", contents[1].Parts[0].Text)
}

func TestBuildContentsWithoutSystemContext(t *testing.T) {
	systemInstruction, contents, contextCount := buildContentsWithContext("the prompt", nil)

	assert.Nil(t, systemInstruction)
	assert.Zero(t, contextCount)
	require.Len(t, contents, 1)
}

func TestBuildGenerateContentConfig(t *testing.T) {
	temperature := 0.4
	maxTokens := 512
	cfg := model.GeneratorConfig{Temperature: &temperature, MaxTokens: &maxTokens}

	config := buildGenerateContentConfig(cfg, nil)

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, float64(*config.Temperature), 0.0001)
	assert.Equal(t, int32(512), config.MaxOutputTokens)
	assert.Nil(t, config.SystemInstruction)
}

func TestGenerateJSONSchemaShape(t *testing.T) {
	type capital struct {
		Country string `json:"country"`
		City    string `json:"city"`
	}

	schema, err := generateJSONSchema[capital]()

	require.NoError(t, err)
	assert.Equal(t, false, schema["additionalProperties"])
	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "country")
	assert.Contains(t, properties, "city")
}

func TestEmptyPromptIsRejected(t *testing.T) {
	_, err := NewStringContentGenerator(" ")
	assert.Error(t, err)

	type anything struct{}
	_, err = NewStructureContentGenerator[anything]("")
	assert.Error(t, err)
}

func TestEmptyPathsAreRejected(t *testing.T) {
	_, err := NewVisionOCRGenerator("", model.VisionOptions{})
	assert.Error(t, err)

	_, err = NewAudioTranscriptionGenerator("  ", model.AudioOptions{})
	assert.Error(t, err)
}
