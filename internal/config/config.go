// Package config loads application settings from defaults, an optional
// YAML file and VIDYA_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/llm"
	"github.com/abhisek/vidya/internal/logging"
	"github.com/abhisek/vidya/internal/telemetry"
)

// EnvPrefix prefixes every environment override, e.g. VIDYA_LLM_PROVIDER.
const EnvPrefix = "VIDYA"

// Config is the complete application configuration.
type Config struct {
	LLM       llm.Config       `mapstructure:"llm"`
	Content   content.Config   `mapstructure:"content"`
	Log       logging.Config   `mapstructure:"log"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`

	// Language is the default lesson language: en, ta or hi.
	Language string `mapstructure:"language"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:       llm.DefaultConfig(),
		Content:   content.DefaultConfig(),
		Log:       logging.DefaultConfig(),
		Telemetry: telemetry.DefaultConfig(),
		Language:  string(catalog.LanguageEnglish),
	}
}

// DefaultPath returns the config file looked up when none is given:
// $XDG_CONFIG_HOME/vidya/config.yaml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vidya", "config.yaml")
}

// Load reads configuration. An explicit path must exist; without one the
// default path is used when present. Standard provider API key variables
// (GEMINI_API_KEY and friends) fill in a missing key last.
func Load(path string) (Config, error) {
	v := newViper()

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	default:
		if p := DefaultPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				v.SetConfigFile(p)
				if err := v.ReadInConfig(); err != nil {
					return Config{}, fmt.Errorf("reading config %s: %w", p, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LLM = cfg.LLM.WithDiscoveredKey()
	return cfg, nil
}

// newViper returns a viper instance with every key defaulted and bound to
// its environment variable.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()

	v.SetDefault("language", d.Language)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
	v.SetDefault("llm.rate_limit.requests_per_second", d.LLM.RateLimit.RequestsPerSecond)
	v.SetDefault("llm.rate_limit.burst", d.LLM.RateLimit.Burst)

	// Provider keys also answer to the shorter VIDYA_<PROVIDER>_* names.
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		up := strings.ToUpper(p)
		_ = v.BindEnv("llm."+p+".api_key", EnvPrefix+"_LLM_"+up+"_API_KEY", EnvPrefix+"_"+up+"_API_KEY")
		_ = v.BindEnv("llm."+p+".model", EnvPrefix+"_LLM_"+up+"_MODEL", EnvPrefix+"_"+up+"_MODEL")
	}
	_ = v.BindEnv("llm.openai.base_url", EnvPrefix+"_LLM_OPENAI_BASE_URL", EnvPrefix+"_OPENAI_BASE_URL")

	for name, pc := range map[string]content.PurposeConfig{
		"intro":      d.Content.Intro,
		"reply":      d.Content.Reply,
		"quiz":       d.Content.Quiz,
		"insight":    d.Content.Insight,
		"curriculum": d.Content.Curriculum,
	} {
		v.SetDefault("content."+name+".max_tokens", pc.MaxTokens)
		v.SetDefault("content."+name+".temperature", pc.Temperature)
	}

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)

	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.file", d.Telemetry.File)
	v.SetDefault("telemetry.sample_ratio", d.Telemetry.SampleRatio)

	return v
}

// Validate checks every section. LLM credentials are checked separately by
// ValidateLLM because commands that never call the model do not need them.
func (c Config) Validate() error {
	var errs []error
	if _, ok := catalog.ParseLanguage(c.Language); !ok {
		errs = append(errs, fmt.Errorf("unknown language %q (want en, ta or hi)", c.Language))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateLLM checks that the selected provider is usable.
func (c Config) ValidateLLM() error {
	return c.LLM.Validate()
}

// DefaultLanguage returns the configured lesson language.
func (c Config) DefaultLanguage() catalog.Language {
	lang, ok := catalog.ParseLanguage(c.Language)
	if !ok {
		return catalog.LanguageEnglish
	}
	return lang
}
