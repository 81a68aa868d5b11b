// Package rag scores corpus documents against a query and assembles the
// best matches into a bounded context block.
//
// Scoring is a cheap lexical heuristic: the sum over query terms of how often
// each term occurs in the document. There is no IDF weighting and no length
// normalisation; the corpus is small and static.
package rag

import (
	"strings"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
)

// Terms case-folds a query and splits it on whitespace. Repeated terms are kept.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Score returns the relevance of doc to query.
func Score(query string, doc corpus.Document) int {
	return scoreTerms(Terms(query), strings.ToLower(doc.Text))
}

// scoreTerms counts non-overlapping occurrences of every term in lowered text.
func scoreTerms(terms []string, lowered string) int {
	score := 0
	for _, term := range terms {
		score += strings.Count(lowered, term)
	}
	return score
}
