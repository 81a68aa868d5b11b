// Package budget fits retrieved context into the provider's input limit.
//
// Token counts are estimated as characters/4 (floor). This is a deliberate
// approximation kept for parity with existing truncation behaviour; it is not
// a tokenizer.
package budget

import "github.com/hquocmanh0502/cmp-travel-ai-web/internal/textutil"

// CharsPerToken is the fixed estimation ratio.
const CharsPerToken = 4

// Placeholder replaces the context when nothing fits.
const Placeholder = "Limited context due to length constraints."

const (
	// MarkerShort is appended by the HTTP service when context is cut.
	MarkerShort = "..."

	// MarkerLong is appended by the interactive assistant when context is cut.
	MarkerLong = "\n\n... (truncated)"
)

// Limits describes the token envelope of one generation request.
type Limits struct {
	// TotalCeiling is the provider's context window in tokens.
	TotalCeiling int

	// ReservedOutput is held back for the model's reply.
	ReservedOutput int

	// SafetyMargin absorbs message framing overhead.
	SafetyMargin int

	// TruncationMarker is appended to cut context.
	TruncationMarker string
}

// DefaultLimits returns the HTTP service envelope.
func DefaultLimits() Limits {
	return Limits{
		TotalCeiling:     16385,
		ReservedOutput:   600,
		SafetyMargin:     50,
		TruncationMarker: MarkerShort,
	}
}

// Allocation is the outcome of fitting context into the budget.
type Allocation struct {
	// Context is the text to send; never longer than Available tokens when Available > 0.
	Context string

	// Available is the token allowance left for context.
	Available int

	Truncated bool

	// Omitted is set when the placeholder replaced the context.
	Omitted bool
}

// EstimateTokens approximates the token count of text.
func EstimateTokens(text string) int {
	return textutil.Len(text) / CharsPerToken
}

// AvailableForContext returns the token allowance left after the fixed parts.
func AvailableForContext(system, user string, l Limits) int {
	return l.TotalCeiling - l.ReservedOutput - EstimateTokens(system) - EstimateTokens(user) - l.SafetyMargin
}

// Allocate returns contextText unchanged when it fits, a marked prefix when
// only part of it fits, or Placeholder when no room is left.
func Allocate(system, user, contextText string, l Limits) Allocation {
	available := AvailableForContext(system, user, l)

	if available > 0 && EstimateTokens(contextText) <= available {
		return Allocation{Context: contextText, Available: available}
	}
	if available <= 0 {
		return Allocation{Context: Placeholder, Available: available, Omitted: true}
	}

	maxChars := available * CharsPerToken
	marker := l.TruncationMarker
	markerLen := textutil.Len(marker)
	if markerLen >= maxChars {
		return Allocation{Context: textutil.Prefix(contextText, maxChars), Available: available, Truncated: true}
	}
	return Allocation{
		Context:   textutil.Prefix(contextText, maxChars-markerLen) + marker,
		Available: available,
		Truncated: true,
	}
}
