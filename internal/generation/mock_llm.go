package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockLLM is a deterministic LLM implementation for testing.
// It returns predictable responses based on prompt content.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a default response is generated from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// FailFirst limits Error to the first FailFirst calls. Zero means every call fails.
	FailFirst int

	// LastPrompt stores the content of the final message of the most recent call.
	LastPrompt string

	// LastMessages stores the full conversation of the most recent call.
	LastMessages []Message

	mu    sync.Mutex
	calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or generates a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.LastMessages = append([]Message(nil), messages...)
	if len(messages) > 0 {
		m.LastPrompt = messages[len(messages)-1].Content
	}

	if m.Error != nil && (m.FailFirst == 0 || m.calls <= m.FailFirst) {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(m.LastPrompt), nil
}

// Calls reports how many times Generate ran.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// generateMockResponse echoes the question and the number of context passages.
func generateMockResponse(prompt string) string {
	question := "your question"
	if _, after, ok := strings.Cut(prompt, "User: "); ok {
		q, _, _ := strings.Cut(after, "\n\nResponse:")
		if q = strings.TrimSpace(q); q != "" {
			question = q
		}
	}

	passages := 0
	if ctx, _, ok := strings.Cut(prompt, "\n\nUser: "); ok {
		ctx = strings.TrimSpace(strings.TrimPrefix(ctx, "Context:"))
		if ctx != "" {
			passages = strings.Count(ctx, "\n\n---\n\n") + 1
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Based on %d passages from the CMP Travel knowledge base, ", passages))
	b.WriteString(fmt.Sprintf("here is what I found about %q. ", question))
	b.WriteString("Contact booking@cmp-travel.com to reserve.")
	return b.String()
}
