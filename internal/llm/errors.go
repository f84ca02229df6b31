package llm

import (
	"errors"
	"fmt"
)

// The adapter classifies every failure into one of three kinds so the
// orchestrator can pick the right recovery: malformed output gets one
// prompt retry, rate limiting throttles the loop without burning the
// entry's retry, and anything else skips the entry untouched.

// MalformedOutputError means the provider responded but the response
// was not valid JSON for the contract. Recoverable by one retry.
type MalformedOutputError struct {
	Message string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Message)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}

// RateLimitedError means the provider signalled throttling. This must
// never be treated as an entry failure; it only slows the loop down.
type RateLimitedError struct {
	Cause error
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("provider rate limited: %v", e.Cause)
}

func (e *RateLimitedError) Unwrap() error {
	return e.Cause
}

// ProviderError is any other provider failure. Fatal for the entry;
// the entry is skipped and left unmodified for a later attempt.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsMalformedOutput reports whether err is a MalformedOutputError.
func IsMalformedOutput(err error) bool {
	var target *MalformedOutputError
	return errors.As(err, &target)
}

// IsRateLimited reports whether err is a RateLimitedError.
func IsRateLimited(err error) bool {
	var target *RateLimitedError
	return errors.As(err, &target)
}
