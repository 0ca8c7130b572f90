package fireworks

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/deckward-ai/deckward/pkg/model"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Fireworks serves an OpenAI-compatible API, so the provider is a thin
// adapter over the openai-go client pointed at the Fireworks inference URL.

const (
	providerName     = "fireworks"
	defaultBaseURL   = "https://api.fireworks.ai/inference/v1"
	defaultModelName = "accounts/fireworks/models/deepseek-v3"
)

type client struct {
	apiClient openai.Client
}

func newClient(cfg model.GeneratorConfig) *client {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	token := strings.TrimSpace(cfg.AuthToken)
	if token == "" {
		token = strings.TrimSpace(os.Getenv("FIREWORKS_API_KEY"))
	}

	requestOpts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(token),
	}
	return &client{apiClient: openai.NewClient(requestOpts...)}
}

func resolveModelName(cfg model.GeneratorConfig) string {
	if cfg.Model != nil {
		name := strings.TrimSpace(*cfg.Model)
		if name != "" {
			return name
		}
	}
	return defaultModelName
}

func initMetadata(modelName string) model.GenerationMetadata {
	if strings.TrimSpace(modelName) == "" {
		modelName = "unknown"
	}

	return model.GenerationMetadata{
		model.MetadataKeyProvider: providerName,
		model.MetadataKeyModel:    modelName,
	}
}

func setLatencyMetadata(meta model.GenerationMetadata, start time.Time) {
	if meta == nil {
		return
	}
	meta[model.MetadataKeyLatencyMs] = strconv.FormatInt(time.Since(start).Milliseconds(), 10)
}

func applyCompletionMetadata(meta model.GenerationMetadata, completion *openai.ChatCompletion) {
	if meta == nil || completion == nil {
		return
	}

	meta[model.MetadataKeyInputTokens] = strconv.FormatInt(completion.Usage.PromptTokens, 10)
	meta[model.MetadataKeyOutputTokens] = strconv.FormatInt(completion.Usage.CompletionTokens, 10)
	meta[model.MetadataKeyTotalTokens] = strconv.FormatInt(completion.Usage.TotalTokens, 10)
	meta[model.MetadataKeyCachedInputTokens] = strconv.FormatInt(completion.Usage.PromptTokensDetails.CachedTokens, 10)

	if strings.TrimSpace(completion.ID) != "" {
		meta[model.MetadataKeyResponseID] = completion.ID
	}
	if len(completion.Choices) > 0 {
		meta[model.MetadataKeyResponseStatus] = string(completion.Choices[0].FinishReason)
	}
}

func buildCompletionParams(cfg model.GeneratorConfig, messages []openai.ChatCompletionMessageParamUnion) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    resolveModelName(cfg),
		Messages: messages,
	}
	if cfg.Temperature != nil {
		params.Temperature = openai.Float(*cfg.Temperature)
	}
	if cfg.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*cfg.MaxTokens))
	}
	return params
}

func buildMessagesWithContext(prompt string, contexts []*model.PromptContext) ([]openai.ChatCompletionMessageParamUnion, int) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(contexts)+1)
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
			messages = append(messages, openai.SystemMessage(content))
		case model.ContextMessageTypeAssistant:
			messages = append(messages, openai.AssistantMessage(content))
		default:
			messages = append(messages, openai.UserMessage(content))
		}
	}

	messages = append(messages, openai.UserMessage(prompt))
	return messages, contextCount
}
