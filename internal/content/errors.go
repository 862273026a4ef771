package content

import (
	"errors"
	"fmt"

	"github.com/abhisek/vidya/internal/llm"
)

var (
	// ErrProviderUnavailable means the model could not be reached or
	// refused the request.
	ErrProviderUnavailable = errors.New("content provider unavailable")

	// ErrMalformedResponse means the model answered with output that could
	// not be used.
	ErrMalformedResponse = errors.New("malformed content response")
)

// Classify maps an error from the llm layer onto ErrProviderUnavailable or
// ErrMalformedResponse. The returned error wraps both the kind and err.
// Errors that are already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrProviderUnavailable) || errors.Is(err, ErrMalformedResponse) {
		return err
	}

	var (
		invalid *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
	)
	if errors.As(err, &invalid) || errors.As(err, &maxTok) {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	// Rate limits, outages, timeouts, network failures and anything unknown.
	return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}

// Kind returns a short label for a classified error, for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrProviderUnavailable):
		return "unavailable"
	default:
		return "unknown"
	}
}
