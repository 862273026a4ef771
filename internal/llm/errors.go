package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is output that is empty, blocked, or does not match
// the requested schema. Content holds what the model returned, if anything.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is an outage, network failure or any transport
// error not covered by a more specific type.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is structured output cut off by the token limit.
// The partial Content cannot be parsed, so it is never returned as a
// success.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrAuth is a rejected credential (401 or 403). Retrying cannot help.
type ErrAuth struct {
	StatusCode int
	Err        error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("LLM authentication failed (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status from a provider SDK error onto the
// package error types.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrAuth{StatusCode: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// IsPermanent reports whether err will recur on retry.
func IsPermanent(err error) bool {
	var (
		auth   *ErrAuth
		maxTok *ErrMaxTokensExceeded
	)
	return errors.As(err, &auth) || errors.As(err, &maxTok)
}
