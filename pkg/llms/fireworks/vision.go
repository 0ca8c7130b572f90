package fireworks

import (
	"context"
	"encoding/base64"
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deckward-ai/deckward/pkg/logging"
	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/deckward-ai/deckward/pkg/utils"
	openai "github.com/openai/openai-go/v3"
)

const (
	defaultVisionModelName = "accounts/fireworks/models/phi-3-vision-128k-instruct"
	defaultOCRPrompt       = "Analyze the text in the image and write it as it is. Output only the text and nothing else."
)

type visionOCRGenerator struct {
	client    *client
	imagePath string
	opts      model.VisionOptions
}

func NewVisionOCRGenerator(imagePath string, opts model.VisionOptions) (model.ContentGenerator[string], error) {
	if strings.TrimSpace(imagePath) == "" {
		return nil, utils.WrapIfNotNil(errors.New("image path is required"))
	}

	return &visionOCRGenerator{
		client:    newClient(visionGeneratorConfigFromOptions(opts)),
		imagePath: imagePath,
		opts:      opts,
	}, nil
}

func (g *visionOCRGenerator) AddPromptContext(ctx context.Context, messageType model.ContextMessageType, content string) {
	// OCR requests carry no conversation context; the image is the prompt.
	logging.NewLogger(ctx).Debugf("fireworks.visionOCRGenerator.AddPromptContext ignored type=%s", messageType)
}

func (g *visionOCRGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveVisionModelName(g.opts)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	imageBytes, err := os.ReadFile(g.imagePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	mimeType, err := resolveImageMIMEType(g.imagePath)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	prompt := strings.TrimSpace(g.opts.Prompt)
	if prompt == "" {
		prompt = defaultOCRPrompt
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(imageBytes)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
		}),
	}

	cfg := visionGeneratorConfigFromOptions(g.opts)
	cfg.Model = &modelName

	log.Infof("vision_ocr_request model=%q mime_type=%q image_bytes=%d", modelName, mimeType, len(imageBytes))

	completion, err := g.client.apiClient.Chat.Completions.New(ctx, buildCompletionParams(cfg, messages))
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	applyCompletionMetadata(meta, completion)

	text := completionText(completion)
	if text == "" {
		err = errors.New("vision response is empty")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	return text, meta, nil
}

func resolveVisionModelName(opts model.VisionOptions) string {
	if name := strings.TrimSpace(opts.Model); name != "" {
		return name
	}
	return defaultVisionModelName
}

func visionGeneratorConfigFromOptions(opts model.VisionOptions) model.GeneratorConfig {
	cfg := model.GeneratorConfig{
		URL:       opts.URL,
		AuthToken: opts.AuthToken,
	}
	if name := strings.TrimSpace(opts.Model); name != "" {
		cfg.Model = &name
	}
	return cfg
}

func resolveImageMIMEType(imagePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(imagePath)))
	if ext == "" {
		return "", utils.WrapIfNotNil(errors.New("image file extension is required to determine mime type"))
	}

	switch ext {
	case ".png":
		return "image/png", nil
	case ".jpeg", ".jpg":
		return "image/jpeg", nil
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "", utils.WrapIfNotNil(errors.New("unsupported image file extension: " + ext))
	}

	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if !strings.HasPrefix(mimeType, "image/") {
		return "", utils.WrapIfNotNil(errors.New("unsupported image mime type: " + mimeType))
	}
	return mimeType, nil
}
