package generation

import (
	"errors"
	"time"
)

// Failure classifies why a generation call produced no text.
type Failure int

const (
	FailureNone Failure = iota
	FailureStatus
	FailureConnection
	FailureEmptyResponse
	FailureInvalidConfig
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureStatus:
		return "status"
	case FailureConnection:
		return "connection"
	case FailureEmptyResponse:
		return "empty_response"
	case FailureInvalidConfig:
		return "invalid_config"
	default:
		return "unknown"
	}
}

// Fallback replies shown instead of model output.
const (
	ReplyTechnicalDifficulties = "Sorry, I'm experiencing technical difficulties. Please try again in a moment."
	ReplyUnreachable           = "Sorry, I'm unable to connect to the AI service right now. Please try again later."
	ReplyMisconfigured         = "Sorry, the AI service is not configured correctly. Please contact support."
)

// Result is the outcome of Generator.Generate.
type Result struct {
	Text     string
	Failure  Failure
	Attempts int
	Err      error
	Model    string
	Latency  time.Duration
}

// OK reports whether the model produced text.
func (r Result) OK() bool {
	return r.Failure == FailureNone && r.Err == nil
}

// Reply returns the model text or the fallback for the failure class.
func (r Result) Reply() string {
	if r.OK() {
		return r.Text
	}
	return FallbackReply(r.Failure)
}

// FallbackReply maps a failure class to its user-facing text.
func FallbackReply(f Failure) string {
	switch f {
	case FailureConnection:
		return ReplyUnreachable
	case FailureInvalidConfig:
		return ReplyMisconfigured
	default:
		return ReplyTechnicalDifficulties
	}
}

// Classify maps an error from an LLM to its failure class. Unrecognised
// errors count as connection failures.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrInvalidConfig):
		return FailureInvalidConfig
	case errors.Is(err, ErrStatus):
		return FailureStatus
	case errors.Is(err, ErrEmptyResponse):
		return FailureEmptyResponse
	default:
		return FailureConnection
	}
}
