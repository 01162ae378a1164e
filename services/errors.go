package services

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing required identifier on a core
// call. Callers around playback must swallow it rather than interrupt
// the player.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// DailyLimitError is returned when a user has exhausted their daily
// application quota. Remaining is surfaced so the UI can show it.
type DailyLimitError struct {
	Remaining int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("Daily application limit reached. You have %d applications remaining today.", e.Remaining)
}

// AlreadyAppliedError is returned when a user re-applies to the same
// opportunity. Not retryable for that opportunity.
type AlreadyAppliedError struct {
	OpportunityID string
}

func (e *AlreadyAppliedError) Error() string {
	return "You have already applied to this opportunity"
}

// ErrNoMixesUploaded gates applications behind having at least one
// uploaded mix. The UI matches on this to redirect to the upload flow.
var ErrNoMixesUploaded = errors.New("upload at least one mix before applying to opportunities")

// AIServiceError wraps a transport, HTTP, or timeout failure from the
// completion endpoint. Always recoverable by falling back to the
// rule-based scorer.
type AIServiceError struct {
	Err error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("AI matching service unavailable: %v", e.Err)
}

func (e *AIServiceError) Unwrap() error { return e.Err }

// MalformedAIResponseError marks a completion response that could not
// be parsed into the match contract. Logged, never surfaced to the end
// user; the pipeline degrades to the deterministic fallback instead.
type MalformedAIResponseError struct {
	Reason string
}

func (e *MalformedAIResponseError) Error() string {
	return fmt.Sprintf("malformed AI response: %s", e.Reason)
}
