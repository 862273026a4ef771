package llm

import "net/http"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter attribution headers. See https://openrouter.ai/docs/api-reference/overview.
const (
	openRouterReferer = "https://github.com/abhisek/vidya"
	openRouterTitle   = "Vidya"
)

// OpenRouterProvider is the OpenAI adapter pointed at OpenRouter. Model IDs
// are vendor-qualified ("google/gemini-2.0-flash-exp") and pass through.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	httpClient := &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}
	inner, err := newOpenAICompatible("openrouter", OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, httpClient)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// attributionTransport tags each request with the app's referer and title.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(r)
}
