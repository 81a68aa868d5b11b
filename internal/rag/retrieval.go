package rag

import (
	"sort"
	"strings"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/textutil"
)

// Retriever ranks documents from a corpus snapshot and builds context blocks.
// It holds no per-query state and is safe for concurrent use.
type Retriever struct {
	opts Options
}

// NewRetriever creates a Retriever with the given limits.
func NewRetriever(opts Options) *Retriever {
	return &Retriever{opts: opts.withDefaults()}
}

// Options returns the limits the retriever was built with.
func (r *Retriever) Options() Options {
	return r.opts
}

// Retrieve returns the top-scoring documents for query, best first.
// Documents scoring zero are never returned; ties keep corpus order.
func (r *Retriever) Retrieve(query string, c *corpus.Corpus) []ScoredDocument {
	return Rank(query, c, r.opts.MaxCandidates)
}

// Assemble builds the context block for query. An empty string means no
// document matched and is not an error.
func (r *Retriever) Assemble(query string, c *corpus.Corpus) string {
	return Assemble(query, c, r.opts)
}

// Context joins already ranked documents into a context block under the
// retriever's limits.
func (r *Retriever) Context(ranked []ScoredDocument) string {
	return join(snippets(ranked, r.opts.PerDocChars), r.opts.Separator, r.opts.MaxTotalChars)
}

// Rank scores every document and keeps at most maxCandidates positive matches.
// A maxCandidates of zero or less keeps none.
func Rank(query string, c *corpus.Corpus, maxCandidates int) []ScoredDocument {
	terms := Terms(query)
	if len(terms) == 0 || maxCandidates <= 0 {
		return nil
	}

	var scored []ScoredDocument
	c.Each(func(_ int, doc corpus.Document) {
		if s := scoreTerms(terms, strings.ToLower(doc.Text)); s > 0 {
			scored = append(scored, ScoredDocument{Score: s, Document: doc})
		}
	})

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}
	return scored
}

// Assemble ranks documents, truncates each to PerDocChars, and accumulates
// snippets in rank order until the next one (with its separator) would push
// the block past MaxTotalChars. The result never exceeds MaxTotalChars.
func Assemble(query string, c *corpus.Corpus, opts Options) string {
	opts = opts.withDefaults()
	ranked := Rank(query, c, opts.MaxCandidates)
	return join(snippets(ranked, opts.PerDocChars), opts.Separator, opts.MaxTotalChars)
}

func snippets(ranked []ScoredDocument, perDocChars int) []string {
	if perDocChars <= 0 {
		return nil
	}
	out := make([]string, 0, len(ranked))
	for _, sd := range ranked {
		out = append(out, textutil.Prefix(sd.Document.Text, perDocChars))
	}
	return out
}

func join(parts []string, sep string, maxTotal int) string {
	sepLen := textutil.Len(sep)
	total := 0
	accepted := make([]string, 0, len(parts))

	for _, part := range parts {
		size := textutil.Len(part)
		if len(accepted) > 0 {
			size += sepLen
		}
		if total+size > maxTotal {
			break
		}
		accepted = append(accepted, part)
		total += size
	}
	return strings.Join(accepted, sep)
}
