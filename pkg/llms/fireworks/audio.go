package fireworks

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/deckward-ai/deckward/pkg/logging"
	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/deckward-ai/deckward/pkg/utils"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
)

const defaultAudioTranscriptionModelName = "whisper-v3"

type audioTranscriptionGenerator struct {
	client   *client
	filePath string
	opts     model.AudioOptions
}

func NewAudioTranscriptionGenerator(filePath string, opts model.AudioOptions) (model.ContentGenerator[string], error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, utils.WrapIfNotNil(errors.New("file path is required"))
	}

	return &audioTranscriptionGenerator{
		client:   newClient(audioGeneratorConfigFromOptions(opts)),
		filePath: filePath,
		opts:     opts,
	}, nil
}

func (g *audioTranscriptionGenerator) AddPromptContext(ctx context.Context, messageType model.ContextMessageType, content string) {
	// Transcription requests carry no conversation context.
	logging.NewLogger(ctx).Debugf("fireworks.audioTranscriptionGenerator.AddPromptContext ignored type=%s", messageType)
}

func (g *audioTranscriptionGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveAudioTranscriptionModelName(g.opts)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	log.Infof("audio_transcription_request model=%q language=%q", modelName, g.opts.Language)

	file, err := os.Open(g.filePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	defer func() {
		_ = file.Close()
	}()

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(modelName),
		ResponseFormat: openai.AudioResponseFormatJSON,
	}
	if language := strings.TrimSpace(g.opts.Language); language != "" {
		params.Language = param.NewOpt(language)
	}
	if prompt := strings.TrimSpace(g.opts.Prompt); prompt != "" {
		params.Prompt = param.NewOpt(prompt)
	}

	response, err := g.client.apiClient.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	if response == nil {
		err = errors.New("audio transcriptions API returned nil response")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	transcript := strings.TrimSpace(response.Text)
	if transcript == "" {
		err = errors.New("transcription response is empty")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	applyAudioTranscriptionMetadata(meta, response)
	return transcript, meta, nil
}

func resolveAudioTranscriptionModelName(opts model.AudioOptions) string {
	if name := strings.TrimSpace(opts.Model); name != "" {
		return name
	}
	return defaultAudioTranscriptionModelName
}

func audioGeneratorConfigFromOptions(opts model.AudioOptions) model.GeneratorConfig {
	cfg := model.GeneratorConfig{
		URL:       opts.URL,
		AuthToken: opts.AuthToken,
	}
	if name := strings.TrimSpace(opts.Model); name != "" {
		cfg.Model = &name
	}
	return cfg
}

func applyAudioTranscriptionMetadata(meta model.GenerationMetadata, response *openai.AudioTranscriptionNewResponseUnion) {
	if meta == nil || response == nil {
		return
	}

	meta[model.MetadataKeyInputTokens] = strconv.FormatInt(response.Usage.InputTokens, 10)
	meta[model.MetadataKeyOutputTokens] = strconv.FormatInt(response.Usage.OutputTokens, 10)
	meta[model.MetadataKeyTotalTokens] = strconv.FormatInt(response.Usage.TotalTokens, 10)
}
