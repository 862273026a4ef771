package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the model output.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its response.
	// When the request's Schema field is set, the provider uses its native
	// structured output mechanism and the response Content is JSON that
	// passed validation against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ProviderName returns the vendor label of p ("anthropic", "gemini", ...)
// when it reports one, and its model ID otherwise.
func ProviderName(p Provider) string {
	if named, ok := p.(interface{ Name() string }); ok {
		return named.Name()
	}
	return p.ModelID()
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history, oldest first. Tutoring replies
	// send the whole lesson transcript; one-shot generation sends a single
	// user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, the response Content is the raw model text.
	Schema *Schema

	// JSONMode asks the provider to emit a JSON document without enforcing
	// a schema. The output is not validated; callers must tolerate text that
	// does not parse. Ignored when Schema is set.
	JSONMode bool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name for
	// OpenAI, cache key for validation). Kebab-case, e.g. "quiz-questions".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// provided, otherwise the raw text returned by the model.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens. Blocked output is an error.
	StopReason string
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
