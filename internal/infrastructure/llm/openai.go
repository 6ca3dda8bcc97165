package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/beautyai/backend/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient calls the OpenAI chat completions API
type OpenAIClient struct {
	client openai.Client
	model  string
	hasKey bool
}

// NewOpenAIClient creates an OpenAI client. The SDK handles its own retries.
func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.RetryMax),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
		hasKey: cfg.APIKey != "",
	}
}

// Name returns "openai"
func (c *OpenAIClient) Name() string { return ProviderOpenAI }

// Complete sends a system and a user message and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	if !c.hasKey {
		return "", fmt.Errorf("%w: openai api key not configured", domain.ErrSourceDisabled)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(c.model),
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %w", domain.ErrUpstreamFailure, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", domain.ErrNoCompletion)
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: openai returned no text", domain.ErrNoCompletion)
	}
	return text, nil
}
