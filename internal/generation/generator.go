package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds the outbound call.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first. Values below 1 mean 1.
	MaxAttempts int

	// BaseDelay is the wait after the first failure; it doubles after each retry.
	BaseDelay time.Duration

	// Timeout bounds each attempt.
	Timeout time.Duration
}

// ServicePolicy fails fast: one attempt with a 30 second timeout.
func ServicePolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1, BaseDelay: time.Second, Timeout: 30 * time.Second}
}

// InteractivePolicy retries twice with 1s then 2s waits.
func InteractivePolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Timeout: 30 * time.Second}
}

// Request is one generation call.
type Request struct {
	System  string
	User    string
	Context string

	// History holds earlier turns, oldest first.
	History []Message
}

// Generator invokes an LLM with a framed prompt under a retry policy.
type Generator struct {
	llm    LLM
	config LLMConfig
	policy RetryPolicy
	logger *slog.Logger
}

// NewGenerator creates a generator with the given LLM implementation.
func NewGenerator(llm LLM, config LLMConfig, policy RetryPolicy, logger *slog.Logger) *Generator {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Timeout <= 0 {
		policy.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{llm: llm, config: config, policy: policy, logger: logger}
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.config.Model
}

// LLM returns the underlying provider.
func (g *Generator) LLM() LLM {
	return g.llm
}

// Generate sends req and returns the classified outcome. It never returns an
// error; failures are reported through Result.Failure. The call is detached
// from ctx cancellation and ends on success, timeout or retry exhaustion.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	start := time.Now()
	if g.llm == nil {
		err := fmt.Errorf("%w: LLM is required", ErrInvalidConfig)
		return Result{Failure: FailureInvalidConfig, Err: err, Model: g.config.Model}
	}

	ctx = context.WithoutCancel(ctx)
	messages := BuildMessages(req.System, BuildPrompt(req.Context, req.User), req.History)

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = g.policy.BaseDelay
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	eb.MaxInterval = time.Minute

	attempts := 0
	operation := func() (string, error) {
		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, g.policy.Timeout)
		defer cancel()

		text, err := g.llm.Generate(attemptCtx, messages)
		if err != nil {
			if errors.Is(err, ErrInvalidConfig) {
				return "", backoff.Permanent(err)
			}
			if attemptCtx.Err() != nil && !errors.Is(err, ErrConnection) {
				err = fmt.Errorf("%w: %w", ErrConnection, err)
			}
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	notify := func(err error, wait time.Duration) {
		g.logger.Warn("generation attempt failed",
			"attempt", attempts,
			"max_attempts", g.policy.MaxAttempts,
			"retry_in", wait,
			"error", err)
	}

	text, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(uint(g.policy.MaxAttempts)),
		backoff.WithNotify(notify),
	)

	res := Result{
		Text:     text,
		Attempts: attempts,
		Model:    g.config.Model,
		Latency:  time.Since(start),
	}
	if err != nil {
		res.Text = ""
		res.Err = err
		res.Failure = Classify(err)
		g.logger.Error("generation failed",
			"attempts", attempts,
			"failure", res.Failure.String(),
			"error", err)
	}
	return res
}
