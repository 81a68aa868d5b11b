// Package config defines the runtime settings of travelrag and loads them
// from YAML or TOML files.
package config

import (
	"errors"
	"time"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/budget"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/generation"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/rag"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Profile selects a set of defaults.
type Profile string

const (
	// ProfileService backs the HTTP API: tighter context, fail-fast generation.
	ProfileService Profile = "service"

	// ProfileInteractive backs the terminal chat: more context, retries.
	ProfileInteractive Profile = "interactive"
)

// Config is the root configuration.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus" toml:"corpus"`
	Retrieval  RetrievalConfig  `yaml:"retrieval" toml:"retrieval"`
	Budget     BudgetConfig     `yaml:"budget" toml:"budget"`
	Generation GenerationConfig `yaml:"generation" toml:"generation"`
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Log        LogConfig        `yaml:"log" toml:"log"`
}

type CorpusConfig struct {
	Root       string `yaml:"root" toml:"root" validate:"required"`
	Watch      bool   `yaml:"watch" toml:"watch"`
	DebounceMS int    `yaml:"debounce_ms" toml:"debounce_ms" validate:"gte=0"`
}

// RetrievalConfig limits are applied literally by the retriever, where zero
// admits no context at all, so each must be at least 1.
type RetrievalConfig struct {
	MaxCandidates int `yaml:"max_candidates" toml:"max_candidates" validate:"gte=1"`
	PerDocChars   int `yaml:"per_doc_chars" toml:"per_doc_chars" validate:"gte=1"`
	MaxTotalChars int `yaml:"max_total_chars" toml:"max_total_chars" validate:"gte=1"`
}

type BudgetConfig struct {
	TotalCeiling     int    `yaml:"total_ceiling" toml:"total_ceiling" validate:"gt=0"`
	ReservedOutput   int    `yaml:"reserved_output" toml:"reserved_output" validate:"gte=0"`
	SafetyMargin     int    `yaml:"safety_margin" toml:"safety_margin" validate:"gte=0"`
	TruncationMarker string `yaml:"truncation_marker" toml:"truncation_marker"`
}

type GenerationConfig struct {
	Provider    string  `yaml:"provider" toml:"provider" validate:"oneof=openai anthropic mock"`
	Model       string  `yaml:"model" toml:"model" validate:"required"`
	Temperature float64 `yaml:"temperature" toml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" toml:"max_tokens" validate:"gte=1"`
	APIKey      string  `yaml:"api_key" toml:"api_key"`
	BaseURL     string  `yaml:"base_url" toml:"base_url" validate:"omitempty,url"`

	MaxAttempts    int `yaml:"max_attempts" toml:"max_attempts" validate:"gte=1,lte=10"`
	BaseDelayMS    int `yaml:"base_delay_ms" toml:"base_delay_ms" validate:"gte=0"`
	TimeoutSeconds int `yaml:"timeout_seconds" toml:"timeout_seconds" validate:"gte=1"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr" validate:"required"`

	// RateLimit is the steady requests per second allowed per client. Zero disables limiting.
	RateLimit   float64  `yaml:"rate_limit" toml:"rate_limit" validate:"gte=0"`
	RateBurst   int      `yaml:"rate_burst" toml:"rate_burst" validate:"gte=0"`
	CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=text json"`
}

// Default returns the built-in settings for profile. Unknown profiles get
// the service defaults.
func Default(profile Profile) *Config {
	cfg := &Config{
		Corpus: CorpusConfig{
			Root:       "knowledge-base-travel",
			DebounceMS: 500,
		},
		Retrieval: RetrievalConfig{
			MaxCandidates: 3,
			PerDocChars:   1200,
			MaxTotalChars: 6000,
		},
		Budget: BudgetConfig{
			TotalCeiling:     16385,
			ReservedOutput:   600,
			SafetyMargin:     50,
			TruncationMarker: budget.MarkerShort,
		},
		Generation: GenerationConfig{
			Provider:       generation.ProviderOpenAI,
			Model:          "gpt-3.5-turbo",
			Temperature:    0.7,
			MaxTokens:      600,
			MaxAttempts:    1,
			BaseDelayMS:    1000,
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			Addr:        ":5000",
			RateLimit:   10,
			RateBurst:   20,
			CORSOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}

	if profile == ProfileInteractive {
		cfg.Retrieval.PerDocChars = 1500
		cfg.Retrieval.MaxTotalChars = 8000
		cfg.Budget.ReservedOutput = 800
		cfg.Budget.TruncationMarker = budget.MarkerLong
		cfg.Generation.MaxTokens = 800
		cfg.Generation.MaxAttempts = 3
	}
	return cfg
}

// RetrievalOptions converts the retrieval section for rag.NewRetriever.
func (c *Config) RetrievalOptions() rag.Options {
	return rag.Options{
		MaxCandidates: c.Retrieval.MaxCandidates,
		PerDocChars:   c.Retrieval.PerDocChars,
		MaxTotalChars: c.Retrieval.MaxTotalChars,
		Separator:     rag.DefaultSeparator,
	}
}

// BudgetLimits converts the budget section.
func (c *Config) BudgetLimits() budget.Limits {
	return budget.Limits{
		TotalCeiling:     c.Budget.TotalCeiling,
		ReservedOutput:   c.Budget.ReservedOutput,
		SafetyMargin:     c.Budget.SafetyMargin,
		TruncationMarker: c.Budget.TruncationMarker,
	}
}

// LLMConfig converts the generation section for generation.New.
func (c *Config) LLMConfig() generation.LLMConfig {
	return generation.LLMConfig{
		Provider:    c.Generation.Provider,
		Model:       c.Generation.Model,
		Temperature: c.Generation.Temperature,
		MaxTokens:   c.Generation.MaxTokens,
		APIKey:      c.Generation.APIKey,
		BaseURL:     c.Generation.BaseURL,
	}
}

// RetryPolicy converts the generation retry settings.
func (c *Config) RetryPolicy() generation.RetryPolicy {
	return generation.RetryPolicy{
		MaxAttempts: c.Generation.MaxAttempts,
		BaseDelay:   time.Duration(c.Generation.BaseDelayMS) * time.Millisecond,
		Timeout:     time.Duration(c.Generation.TimeoutSeconds) * time.Second,
	}
}

// WatcherConfig converts the corpus section for corpus.NewWatcher.
func (c *Config) WatcherConfig(onReload func(*corpus.Corpus)) corpus.WatcherConfig {
	return corpus.WatcherConfig{
		Root:       c.Corpus.Root,
		Categories: corpus.Categories,
		Debounce:   time.Duration(c.Corpus.DebounceMS) * time.Millisecond,
		OnReload:   onReload,
	}
}
