// Package generation sends assembled prompts to a chat-style language model
// and maps the outcome to a reply the front ends can show. It defines a
// provider-agnostic LLM interface with implementations for OpenAI and
// Anthropic plus a deterministic mock for testing.
package generation

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrStatus marks a non-success HTTP status from the provider.
	ErrStatus = errors.New("provider returned an error status")

	// ErrConnection marks transport failures and timeouts.
	ErrConnection = errors.New("provider unreachable")

	// ErrEmptyResponse marks a successful call that carried no text.
	ErrEmptyResponse = errors.New("provider returned no content")

	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// StatusError carries the HTTP status of a failed provider call.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %v", ErrStatus, e.Code, e.Err)
}

// Unwrap exposes both ErrStatus and the underlying SDK error.
func (e *StatusError) Unwrap() []error {
	return []error{ErrStatus, e.Err}
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat message sent to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces a reply to the conversation in messages.
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Pinger is implemented by providers that support a cheap connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// LLMConfig holds common configuration options for LLM providers.
type LLMConfig struct {
	// Provider selects the backend: "openai", "anthropic" or "mock".
	Provider string

	// Model specifies the model identifier (e.g., "gpt-3.5-turbo")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float64

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string

	// BaseURL overrides the provider endpoint. Empty uses the SDK default.
	BaseURL string
}

// DefaultLLMConfig returns the settings used by the HTTP service.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:    ProviderOpenAI,
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   600,
	}
}

// New builds the provider named by config.Provider.
func New(config LLMConfig) (LLM, error) {
	switch config.Provider {
	case ProviderOpenAI, "":
		return NewOpenAILLM(config)
	case ProviderAnthropic:
		return NewAnthropicLLM(config)
	case ProviderMock:
		return NewMockLLM(""), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, config.Provider)
	}
}

// Ping checks that llm is reachable with a minimal request.
func Ping(ctx context.Context, llm LLM) error {
	if llm == nil {
		return fmt.Errorf("%w: LLM is required", ErrInvalidConfig)
	}
	if p, ok := llm.(Pinger); ok {
		return p.Ping(ctx)
	}
	_, err := llm.Generate(ctx, []Message{{Role: RoleUser, Content: pingMessage}})
	return err
}

const (
	pingMessage   = "Test connection"
	pingMaxTokens = 10
)

// Unavailable returns an LLM that fails every call with err. Front ends use
// it to keep serving fallback replies when the provider cannot be built.
func Unavailable(err error) LLM {
	return unavailableLLM{err: err}
}

type unavailableLLM struct {
	err error
}

func (u unavailableLLM) Generate(context.Context, []Message) (string, error) {
	return "", u.err
}
