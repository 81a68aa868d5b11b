package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chatCompletionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-3.5-turbo",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Hue has three tours."}}
  ]
}`

func newOpenAITestLLM(t *testing.T, handler http.HandlerFunc) *OpenAILLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultLLMConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = srv.URL + "/"

	llm, err := NewOpenAILLM(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return llm
}

func TestOpenAILLM_Generate(t *testing.T) {
	var body struct {
		Model       string    `json:"model"`
		MaxTokens   int       `json:"max_tokens"`
		Temperature float64   `json:"temperature"`
		Messages    []Message `json:"messages"`
	}
	llm := newOpenAITestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionBody))
	})

	text, err := llm.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "Hue tours"},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hue has three tours." {
		t.Errorf("unexpected text: %q", text)
	}
	if body.Model != "gpt-3.5-turbo" || body.MaxTokens != 600 || body.Temperature != 0.7 {
		t.Errorf("unexpected request parameters: %+v", body)
	}
	if len(body.Messages) != 2 || body.Messages[0].Role != RoleSystem {
		t.Errorf("unexpected messages: %+v", body.Messages)
	}
}

func TestOpenAILLM_Generate_StatusError(t *testing.T) {
	calls := 0
	llm := newOpenAITestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	})

	_, err := llm.Generate(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", statusErr.Code)
	}
	if Classify(err) != FailureStatus {
		t.Errorf("expected FailureStatus, got %s", Classify(err))
	}
	if calls != 1 {
		t.Errorf("SDK retried the request: %d calls", calls)
	}
}

func TestOpenAILLM_Generate_EmptyChoices(t *testing.T) {
	llm := newOpenAITestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`))
	})

	_, err := llm.Generate(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAILLM_Generate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/"
	srv.Close()

	llm, err := NewOpenAILLM(LLMConfig{Model: "gpt-3.5-turbo", APIKey: "k", BaseURL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = llm.Generate(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	if !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
}

func TestOpenAILLM_Ping(t *testing.T) {
	var body struct {
		MaxTokens int `json:"max_tokens"`
	}
	llm := newOpenAITestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionBody))
	})

	if err := Ping(context.Background(), llm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.MaxTokens != 10 {
		t.Errorf("expected ping to request 10 tokens, got %d", body.MaxTokens)
	}
}

func TestNewOpenAILLM_InvalidConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name   string
		config LLMConfig
	}{
		{name: "missing key", config: LLMConfig{Model: "gpt-3.5-turbo"}},
		{name: "missing model", config: LLMConfig{APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOpenAILLM(tt.config)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestAnthropicLLM_Generate(t *testing.T) {
	var body struct {
		System   []struct{ Text string } `json:"system"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
  "id": "msg_1", "type": "message", "role": "assistant", "model": "claude-test",
  "content": [{"type": "text", "text": "Sapa trekking starts at $120."}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 8}
}`))
	}))
	defer srv.Close()

	llm, err := NewAnthropicLLM(LLMConfig{Provider: ProviderAnthropic, Model: "claude-test", APIKey: "k", MaxTokens: 800, BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := llm.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "Sapa?"},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Sapa trekking starts at $120." {
		t.Errorf("unexpected text: %q", text)
	}
	if len(body.System) != 1 || body.System[0].Text != "sys" {
		t.Errorf("system prompt not sent separately: %+v", body.System)
	}
	if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
		t.Errorf("unexpected messages: %+v", body.Messages)
	}
	if body.MaxTokens != 800 {
		t.Errorf("expected max_tokens 800, got %d", body.MaxTokens)
	}
}

func TestAnthropicLLM_Generate_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "bad key"}}`))
	}))
	defer srv.Close()

	llm, err := NewAnthropicLLM(LLMConfig{Model: "claude-test", APIKey: "k", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = llm.Generate(context.Background(), []Message{{Role: RoleUser, Content: "q"}})

	if !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}
}
