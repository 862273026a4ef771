package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s. Zero disables the deadline.
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "claude-haiku"
	BaseURL string `mapstructure:"base_url"` // Optional gateway or proxy.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// RateLimitConfig bounds the request rate sent to the provider.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Timeout: 30 * time.Second,
	}
}

// keyed lists the providers that need an API key, in discovery order,
// with the standard environment variable each vendor documents.
var keyed = []struct {
	name string
	env  string
	key  func(*Config) *string
}{
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// keySlot returns the API key field of the selected provider, or nil for
// providers without one.
func (c *Config) keySlot() (slot *string, env string) {
	for _, k := range keyed {
		if k.name == c.Provider {
			return k.key(c), k.env
		}
	}
	return nil, ""
}

// HasKey reports whether the selected provider can authenticate. The mock
// provider needs no key.
func (c Config) HasKey() bool {
	if c.Provider == "mock" {
		return true
	}
	slot, _ := c.keySlot()
	return slot != nil && *slot != ""
}

// WithDiscoveredKey fills a missing key from the vendor's standard env var.
// When the selected provider has none there either, the first provider
// whose variable is set is selected instead. An explicitly configured
// key always wins.
func (c Config) WithDiscoveredKey() Config {
	if c.HasKey() {
		return c
	}
	if slot, env := c.keySlot(); slot != nil {
		if v := os.Getenv(env); v != "" {
			*slot = v
			return c
		}
	}
	for _, k := range keyed {
		if v := os.Getenv(k.env); v != "" {
			d := c
			d.Provider = k.name
			*k.key(&d) = v
			return d
		}
	}
	return c
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	if slot, _ := c.keySlot(); slot == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if !c.HasKey() {
		return fmt.Errorf("VIDYA_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
