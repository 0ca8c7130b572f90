package fireworks

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
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

type structuredGenerator[T any] struct {
	client          *client
	prompt          string
	cfg             model.GeneratorConfig
	promptContextMu sync.RWMutex
	promptContexts  []*model.PromptContext
}

type textGenerator struct {
	client          *client
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
		client: newClient(cfg),
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
		client: newClient(cfg),
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
	logging.NewLogger(ctx).Debugf("fireworks.structuredGenerator.AddPromptContext total_contexts=%d", len(g.promptContexts))
}

func (g *textGenerator) AddPromptContext(ctx context.Context, messageType model.ContextMessageType, content string) {
	g.promptContextMu.Lock()
	defer g.promptContextMu.Unlock()

	g.promptContexts = append(g.promptContexts, &model.PromptContext{
		MessageType: messageType,
		Content:     content,
	})
	logging.NewLogger(ctx).Debugf("fireworks.textGenerator.AddPromptContext total_contexts=%d", len(g.promptContexts))
}

func (g *structuredGenerator[T]) Generate(ctx context.Context) (T, model.GenerationMetadata, error) {
	start := time.Now()
	modelName := resolveModelName(g.cfg)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	messages, contextCount := buildMessagesWithContext(g.prompt, g.snapshotContexts())

	schema, err := generateJSONSchema[T]()
	if err != nil {
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}

	params := buildCompletionParams(g.cfg, messages)
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   "structured_output",
				Schema: schema,
				Strict: openai.Bool(true),
			},
		},
	}

	log.Infof(
		"prompt=%q context_count=%d model=%q temperature=%v max_tokens=%v",
		g.prompt,
		contextCount,
		modelName,
		g.cfg.Temperature,
		g.cfg.MaxTokens,
	)

	completion, err := g.client.apiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Errorf("error: %v", err)
		var zero T
		return zero, meta, utils.WrapIfNotNil(err)
	}
	applyCompletionMetadata(meta, completion)

	text := completionText(completion)
	if text == "" {
		err = errors.New("completion output is empty")
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
	modelName := resolveModelName(g.cfg)
	meta := initMetadata(modelName)
	defer setLatencyMetadata(meta, start)

	log := logging.NewLogger(ctx)
	messages, contextCount := buildMessagesWithContext(g.prompt, g.snapshotContexts())

	log.Infof(
		"prompt=%q context_count=%d model=%q temperature=%v max_tokens=%v",
		g.prompt,
		contextCount,
		modelName,
		g.cfg.Temperature,
		g.cfg.MaxTokens,
	)

	completion, err := g.client.apiClient.Chat.Completions.New(ctx, buildCompletionParams(g.cfg, messages))
	if err != nil {
		log.Errorf("error: %v", err)
		return "", meta, utils.WrapIfNotNil(err)
	}
	applyCompletionMetadata(meta, completion)

	text := completionText(completion)
	if text == "" {
		err = errors.New("completion output is empty")
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

func completionText(completion *openai.ChatCompletion) string {
	if completion == nil || len(completion.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content)
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
