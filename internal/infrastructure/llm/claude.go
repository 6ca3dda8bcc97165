// Package llm holds the language-model clients and the adapter that turns a
// completion into a product source.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beautyai/backend/internal/domain"
	"github.com/beautyai/backend/internal/infrastructure/upstream"
	"go.uber.org/zap"
)

// Provider names as they appear in responses and logs
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultClaudeBaseURL = "https://api.anthropic.com/v1"
	defaultClaudeModel   = "claude-3-5-haiku-latest"
	anthropicVersion     = "2023-06-01"
	defaultMaxTokens     = 2048
)

// ClientConfig configures one language-model client
type ClientConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

// ClaudeClient calls the Anthropic Messages API
type ClaudeClient struct {
	http    *upstream.Client
	apiKey  string
	model   string
	baseURL string
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClaudeClient creates a Claude client
func NewClaudeClient(cfg ClientConfig, logger *zap.Logger) *ClaudeClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultClaudeBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultClaudeModel
	}

	return &ClaudeClient{
		http: upstream.NewClient(upstream.Options{
			Component: ProviderClaude,
			Timeout:   cfg.Timeout,
			RetryMax:  cfg.RetryMax,
			Logger:    logger,
		}),
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
	}
}

// Name returns "claude"
func (c *ClaudeClient) Name() string { return ProviderClaude }

// Complete sends one user turn with a system prompt and returns the text blocks of the reply
func (c *ClaudeClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: claude api key not configured", domain.ErrSourceDisabled)
	}

	header := http.Header{}
	header.Set("x-api-key", c.apiKey)
	header.Set("anthropic-version", anthropicVersion)

	var resp claudeResponse
	err := c.http.PostJSON(ctx, "claude messages", c.baseURL+"/messages", header, claudeRequest{
		Model:     c.model,
		MaxTokens: defaultMaxTokens,
		System:    system,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("%w: claude: %s", domain.ErrUpstreamFailure, resp.Error.Message)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: claude returned no text", domain.ErrNoCompletion)
	}
	return text, nil
}
