package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/budget"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/rag"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/textutil"
)

// NotReadyReply is returned without calling the model when the corpus is empty.
const NotReadyReply = "Knowledge base not loaded. Please contact support."

// Outcome summarises how an answer was produced.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeNotReady Outcome = "not_ready"
	OutcomeFallback Outcome = "fallback"
	OutcomeInternal Outcome = "internal"
)

// Config holds the per-request settings of the pipeline.
type Config struct {
	// SystemPrompt is sent as the system message and counts toward the budget.
	SystemPrompt string

	Limits budget.Limits
}

// DefaultConfig returns the HTTP service settings.
func DefaultConfig() Config {
	return Config{
		SystemPrompt: generation.SystemPrompt,
		Limits:       budget.DefaultLimits(),
	}
}

// Answer is the result of one query.
type Answer struct {
	Text    string
	Outcome Outcome

	// Failure is set when Outcome is OutcomeFallback.
	Failure generation.Failure

	// Documents are the ranked candidates that fed the context.
	Documents []rag.ScoredDocument

	// ContextChars is the length of the assembled context before budgeting.
	ContextChars int

	Allocation budget.Allocation
	Attempts   int
	Latency    time.Duration
}

// Pipeline answers queries: retrieval, context assembly, budget fitting and
// generation. It is safe for concurrent use.
type Pipeline struct {
	source    corpus.Source
	retriever *rag.Retriever
	generator *generation.Generator
	config    Config
	logger    *slog.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(source corpus.Source, retriever *rag.Retriever, generator *generation.Generator, config Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		source:    source,
		retriever: retriever,
		generator: generator,
		config:    config,
		logger:    logger.With("component", "pipeline"),
	}
}

// Answer responds to a single query.
func (p *Pipeline) Answer(ctx context.Context, query string) Answer {
	return p.AnswerWithHistory(ctx, query, nil)
}

// AnswerWithHistory responds to query with earlier turns sent as prior
// messages. The turns also count toward the user side of the budget.
func (p *Pipeline) AnswerWithHistory(ctx context.Context, query string, history []generation.Message) (ans Answer) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("answer panicked", "panic", fmt.Sprint(r))
			ans = Answer{Text: generation.ReplyTechnicalDifficulties, Outcome: OutcomeInternal}
		}
		ans.Latency = time.Since(start)
	}()

	c := p.source.Snapshot()
	if c.IsEmpty() {
		p.logger.Warn("knowledge base not loaded")
		return Answer{Text: NotReadyReply, Outcome: OutcomeNotReady}
	}

	// Stage 1: retrieval
	ranked := p.retriever.Retrieve(query, c)
	contextText := p.retriever.Context(ranked)
	p.logger.Debug("retrieved context",
		"candidates", len(ranked),
		"context_chars", textutil.Len(contextText))

	// Stage 2: budget
	alloc := budget.Allocate(p.config.SystemPrompt, userSide(query, history), contextText, p.config.Limits)
	if alloc.Truncated || alloc.Omitted {
		p.logger.Info("context trimmed to budget",
			"available_tokens", alloc.Available,
			"truncated", alloc.Truncated,
			"omitted", alloc.Omitted)
	}

	// Stage 3: generation
	res := p.generator.Generate(ctx, generation.Request{
		System:  p.config.SystemPrompt,
		User:    query,
		Context: alloc.Context,
		History: history,
	})

	ans = Answer{
		Text:         res.Reply(),
		Outcome:      OutcomeOK,
		Failure:      res.Failure,
		Documents:    ranked,
		ContextChars: textutil.Len(contextText),
		Allocation:   alloc,
		Attempts:     res.Attempts,
	}
	if !res.OK() {
		ans.Outcome = OutcomeFallback
	}
	p.logger.Debug("answered", "outcome", ans.Outcome, "attempts", res.Attempts)
	return ans
}

// Ready reports whether the current corpus has any documents.
func (p *Pipeline) Ready() bool {
	return !p.source.Snapshot().IsEmpty()
}

// Stats reports document counts of the current corpus.
func (p *Pipeline) Stats() corpus.Stats {
	return p.source.Snapshot().Stats()
}

// Model returns the generation model identifier.
func (p *Pipeline) Model() string {
	return p.generator.Model()
}

// Ping checks the generation provider.
func (p *Pipeline) Ping(ctx context.Context) error {
	return generation.Ping(ctx, p.generator.LLM())
}

func userSide(query string, history []generation.Message) string {
	if len(history) == 0 {
		return query
	}
	parts := make([]string, 0, len(history)+1)
	for _, m := range history {
		parts = append(parts, m.Content)
	}
	parts = append(parts, query)
	return strings.Join(parts, "\n")
}
