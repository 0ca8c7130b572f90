package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/deckward-ai/deckward/pkg/logging"
	"github.com/deckward-ai/deckward/pkg/model"
	"github.com/deckward-ai/deckward/pkg/utils"
	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

type structuredGenerator[T any] struct {
	prompt          string
	cfg             model.GeneratorConfig
	promptContextMu sync.RWMutex
	promptContexts  []*model.PromptContext
}

type textGenerator struct {
	prompt          string
	cfg             model.GeneratorConfig
	promptContextMu sync.RWMutex
	promptContexts  []*model.PromptContext
}

func NewStructureContentGenerator[T any](prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[T], error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("prompt is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	return &structuredGenerator[T]{
		prompt: prompt,
		cfg:    cfg,
	}, nil
}

func NewStringContentGenerator(prompt string, opts ...model.GeneratorOption) (model.ContentGenerator[string], error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, utils.WrapIfNotNil(errors.New("prompt is required"))
	}

	cfg := model.ResolveGeneratorOpts(opts...)
	return &textGenerator{
		prompt: prompt,
		cfg:    cfg,
	}, nil
}

func (g *structuredGenerator[T]) AddPromptContext(ctx context.Context, messageType model.ContextMessageType, content string) {
	g.promptContextMu.Lock()
	defer g.promptContextMu.Unlock()

	g.promptContexts = append(g.promptContexts, &model.PromptContext{
		MessageType: messageType,
		Content:     content,
	})
	logging.NewLogger(ctx).Debugf("gemini.structuredGenerator.AddPromptContext total_contexts=%d", len(g.promptContexts))
}

func (g *textGenerator) AddPromptContext(ctx context.Context, messageType model.ContextMessageType, content string) {
	g.promptContextMu.Lock()
	defer g.promptContextMu.Unlock()

	g.promptContexts = append(g.promptContexts, &model.PromptContext{
		MessageType: messageType,
		Content:     content,
	})
	logging.NewLogger(ctx).Debugf("gemini.textGenerator.AddPromptContext total_contexts=%d", len(g.promptContexts))
}

func (g *structuredGenerator[T]) Generate(ctx context.Context) (T, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveGenerationModelName(g.cfg)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	systemInstruction, contents, contextCount := buildContentsWithContext(g.prompt, g.snapshotContexts())

	config := buildGenerateContentConfig(g.cfg, systemInstruction)
	schema, err := generateJSONSchema[T]()
	if err != nil {
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}
	config.ResponseMIMEType = "application/json"
	config.ResponseJsonSchema = schema

	client, err := newAPIClient(ctx, g.cfg)
	if err != nil {
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}

	log.Infof(
		"prompt=%q context_count=%d model=%q temperature=%v max_tokens=%v",
		g.prompt,
		contextCount,
		modelName,
		g.cfg.Temperature,
		g.cfg.MaxTokens,
	)

	response, err := generateWithSchemaFallback(ctx, client, modelName, contents, config)
	if err != nil {
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}

	applyGenerateMetadata(meta, response)
	text := strings.TrimSpace(response.Text())
	if text == "" {
		err = errors.New("response output is empty")
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}

	var out T
	err = json.Unmarshal([]byte(text), &out)
	if err != nil {
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}
	return out, meta, nil
}

func (g *textGenerator) Generate(ctx context.Context) (string, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveGenerationModelName(g.cfg)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	systemInstruction, contents, contextCount := buildContentsWithContext(g.prompt, g.snapshotContexts())
	config := buildGenerateContentConfig(g.cfg, systemInstruction)

	client, err := newAPIClient(ctx, g.cfg)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}

	log.Infof(
		"prompt=%q context_count=%d model=%q temperature=%v max_tokens=%v",
		g.prompt,
		contextCount,
		modelName,
		g.cfg.Temperature,
		g.cfg.MaxTokens,
	)

	response, err := client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	applyGenerateMetadata(meta, response)

	text := strings.TrimSpace(response.Text())
	if text == "" {
		err = errors.New("response output is empty")
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	return text, meta, nil
}

func (g *structuredGenerator[T]) snapshotContexts() []*model.PromptContext {
	g.promptContextMu.RLock()
	defer g.promptContextMu.RUnlock()
	return append([]*model.PromptContext(nil), g.promptContexts...)
}

func (g *textGenerator) snapshotContexts() []*model.PromptContext {
	g.promptContextMu.RLock()
	defer g.promptContextMu.RUnlock()
	return append([]*model.PromptContext(nil), g.promptContexts...)
}

func buildContentsWithContext(prompt string, contexts []*model.PromptContext) (*genai.Content, []*genai.Content, int) {
	systemParts := make([]string, 0)
	contents := make([]*genai.Content, 0, len(contexts)+1)
	contextCount := 0

	for _, contextItem := range contexts {
		if contextItem == nil {
			continue
		}

		content := strings.TrimSpace(contextItem.Content)
		if content == "" {
			continue
		}

		contextCount++
		switch contextItem.MessageType {
		case model.ContextMessageTypeSystem:
			systemParts = append(systemParts, content)
		case model.ContextMessageTypeAssistant:
			contents = append(contents, genai.NewContentFromText(content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(content, genai.RoleUser))
		}
	}

	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	if len(systemParts) == 0 {
		return nil, contents, contextCount
	}

	systemInstruction := genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	return systemInstruction, contents, contextCount
}

// Some models reject response_json_schema; retry once with plain JSON output
// and let the caller's unmarshal enforce the shape.
func generateWithSchemaFallback(
	ctx context.Context,
	client *genai.Client,
	modelName string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	response, err := client.Models.GenerateContent(ctx, modelName, contents, config)
	if err == nil {
		return response, nil
	}

	if config == nil || config.ResponseJsonSchema == nil || !utils.ContainsErrorSubstring(err, "response_json_schema") {
		return nil, utils.WrapIfNotNil(err)
	}

	logging.NewLogger(ctx).Warnf(
		"json schema constraint unsupported for model %q; retrying with json mime type only",
		modelName,
	)

	fallback := *config
	fallback.ResponseJsonSchema = nil

	response, err = client.Models.GenerateContent(ctx, modelName, contents, &fallback)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return response, nil
}

func generateJSONSchema[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var value T
	schema := reflector.Reflect(value)

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	var schemaMap map[string]any
	err = json.Unmarshal(schemaJSON, &schemaMap)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	return schemaMap, nil
}
