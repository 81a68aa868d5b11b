package rag

import "github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"

// DefaultSeparator joins accepted snippets in the context block.
const DefaultSeparator = "\n\n---\n\n"

// ScoredDocument pairs a document with its relevance to one query.
// It is recomputed for every query and never stored.
type ScoredDocument struct {
	Score    int             `json:"score"`
	Document corpus.Document `json:"document"`
}

// Options bounds how much retrieved text reaches the prompt. The limits are
// applied literally: zero or a negative value admits nothing, so an Options
// with any limit left at zero always yields an empty context. Start from
// DefaultOptions to get working values.
type Options struct {
	// MaxCandidates is the number of top-scoring documents considered.
	MaxCandidates int

	// PerDocChars truncates each document to this many leading characters.
	PerDocChars int

	// MaxTotalChars caps the assembled context, separators included.
	MaxTotalChars int

	// Separator joins snippets. Defaults to DefaultSeparator.
	Separator string
}

// DefaultOptions mirrors the HTTP service limits.
func DefaultOptions() Options {
	return Options{
		MaxCandidates: 3,
		PerDocChars:   1200,
		MaxTotalChars: 6000,
		Separator:     DefaultSeparator,
	}
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	return o
}
