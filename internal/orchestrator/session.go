package orchestrator

import (
	"context"
	"sync"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
)

// DefaultMaxTurns is how many question/answer pairs a session remembers.
const DefaultMaxTurns = 3

// Session keeps the recent turns of an interactive conversation.
type Session struct {
	pipeline *Pipeline
	maxTurns int

	mu      sync.Mutex
	history []generation.Message
}

// NewSession starts an empty conversation. maxTurns below 0 disables memory.
func NewSession(p *Pipeline, maxTurns int) *Session {
	return &Session{pipeline: p, maxTurns: maxTurns}
}

// Ask answers query in the context of earlier turns. Only successful
// exchanges are remembered.
func (s *Session) Ask(ctx context.Context, query string) Answer {
	s.mu.Lock()
	history := append([]generation.Message(nil), s.history...)
	s.mu.Unlock()

	ans := s.pipeline.AnswerWithHistory(ctx, query, history)
	if ans.Outcome != OutcomeOK || s.maxTurns <= 0 {
		return ans
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history,
		generation.Message{Role: generation.RoleUser, Content: query},
		generation.Message{Role: generation.RoleAssistant, Content: ans.Text},
	)
	if keep := 2 * s.maxTurns; len(s.history) > keep {
		s.history = append([]generation.Message(nil), s.history[len(s.history)-keep:]...)
	}
	return ans
}

// History returns a copy of the remembered turns, oldest first.
func (s *Session) History() []generation.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]generation.Message(nil), s.history...)
}

// Reset forgets all turns.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// Pipeline returns the pipeline the session answers with.
func (s *Session) Pipeline() *Pipeline {
	return s.pipeline
}
