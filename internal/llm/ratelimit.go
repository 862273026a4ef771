package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that paces outgoing requests with a
// token bucket. Waiting honours ctx cancellation.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider with client-side pacing. A non-positive
// RequestsPerSecond returns p unchanged.
func WithRateLimit(p Provider, cfg RateLimitConfig) Provider {
	if cfg.RequestsPerSecond <= 0 {
		return p
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &RateLimitProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
