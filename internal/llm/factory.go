package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/vidya/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry, rate limiting,
// tracing and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, eventRepo, logger), nil
}

// Wrap applies the standard middleware chain to base:
// caller → timeout → retry → rate limit → tracing → logging → base.
// Every attempt is paced, traced and journaled individually.
func Wrap(base Provider, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) Provider {
	logged := WithLogging(base, eventRepo, logger)
	traced := WithTracing(logged)
	limited := WithRateLimit(traced, cfg.RateLimit)
	retried := WithRetry(limited, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout)
}
