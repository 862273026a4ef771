package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff and
// ±20% jitter. Rate limits wait for the provider's RetryAfter when given.
// Permanent errors return at once, and an invalid response is retried a
// single time since a second sample often parses.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. At least one attempt is always made.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err            error
		invalidRetried bool
	)
	for attempt := range r.config.MaxAttempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &invalidRetried) || attempt == r.config.MaxAttempts-1 {
			return nil, err
		}

		timer := time.NewTimer(r.config.delay(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether another attempt may succeed.
func retryable(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || IsPermanent(err) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
	}
	return true
}

// delay returns the wait before retrying after attempt failed with err.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(c.InitialWait) * math.Pow(c.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(c.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
