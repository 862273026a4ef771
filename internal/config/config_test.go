package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vidya/internal/catalog"
)

// isolate clears every variable Load reads so the host environment cannot
// leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"VIDYA_LLM_PROVIDER", "VIDYA_LANGUAGE", "VIDYA_LOG_LEVEL",
		"VIDYA_GEMINI_API_KEY", "VIDYA_LLM_GEMINI_API_KEY",
		"VIDYA_OPENAI_API_KEY", "VIDYA_LLM_OPENAI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.LLM, cfg.LLM)
	assert.Equal(t, d.Content, cfg.Content)
	assert.Equal(t, d.Log, cfg.Log)
	assert.Equal(t, d.Telemetry, cfg.Telemetry)
	assert.Equal(t, catalog.LanguageEnglish, cfg.DefaultLanguage())
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateLLM(), "gemini without a key")
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
language: ta
llm:
  provider: openai
  timeout: 45s
  openai:
    api_key: sk-file
    model: gpt-4o
  retry:
    max_attempts: 5
content:
  quiz:
    temperature: 0.2
log:
  level: debug
  file: /tmp/vidya.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.LLM.Retry.MaxWait, "unset keys keep defaults")
	assert.InDelta(t, 0.2, cfg.Content.Quiz.Temperature, 1e-9)
	assert.Equal(t, 2048, cfg.Content.Quiz.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, catalog.LanguageTamil, cfg.DefaultLanguage())
	assert.NoError(t, cfg.ValidateLLM())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "llm:\n  provider: openai\n  openai:\n    api_key: sk-file\n")

	t.Setenv("VIDYA_LLM_PROVIDER", "gemini")
	t.Setenv("VIDYA_GEMINI_API_KEY", "g-env")
	t.Setenv("VIDYA_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-env", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DiscoversStandardKeys(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-standard")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider, "default provider has no key, so discovery switches")
	assert.Equal(t, "sk-standard", cfg.LLM.OpenAI.APIKey)
	assert.NoError(t, cfg.ValidateLLM())
}

func TestLoad_DefaultPath(t *testing.T) {
	isolate(t)
	dir := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vidya"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vidya", "config.yaml"), []byte("language: hi\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, catalog.LanguageHindi, cfg.DefaultLanguage())
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "llm: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Language = "fr"
	cfg.Log.Level = "loud"
	cfg.Telemetry.Enabled = true

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown language "fr"`)
	assert.Contains(t, err.Error(), "log level")
	assert.Contains(t, err.Error(), "telemetry file")
}
