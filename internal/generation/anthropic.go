package generation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 1024

// AnthropicLLM implements the LLM interface using the Anthropic Messages API.
type AnthropicLLM struct {
	client anthropic.Client
	config LLMConfig
}

// NewAnthropicLLM creates an Anthropic-backed LLM implementation.
func NewAnthropicLLM(config LLMConfig) (*AnthropicLLM, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set ANTHROPIC_API_KEY or provide in config)", ErrInvalidConfig)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &AnthropicLLM{
		client: anthropic.NewClient(opts...),
		config: config,
	}, nil
}

// Generate sends the conversation to Anthropic and returns the reply text.
func (a *AnthropicLLM) Generate(ctx context.Context, messages []Message) (string, error) {
	return a.complete(ctx, messages, a.config.MaxTokens)
}

// Ping sends a tiny request to verify credentials and connectivity.
func (a *AnthropicLLM) Ping(ctx context.Context) error {
	_, err := a.complete(ctx, []Message{{Role: RoleUser, Content: pingMessage}}, pingMaxTokens)
	return err
}

func (a *AnthropicLLM) complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: messages cannot be empty", ErrInvalidConfig)
	}
	// The Messages API requires max_tokens.
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.config.Model),
		MaxTokens: int64(maxTokens),
	}
	if a.config.Temperature > 0 {
		params.Temperature = anthropic.Float(a.config.Temperature)
	}

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

func classifyAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.StatusCode, Err: err}
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}
