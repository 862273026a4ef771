package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopBlocked   = "blocked" // safety filter or refusal
)

// jsonModeInstruction is appended to the system prompt for providers
// without a native JSON object mode.
const jsonModeInstruction = "Respond with a single JSON object and nothing else."

// finish converts raw model text into a Response under the request's
// output contract. Structured output has any Markdown code fence removed,
// must be non-empty, must not be truncated and, with a schema, must
// validate. Blocked output is always an invalid response. Empty plain text
// is returned as is; callers decide what an empty answer means.
func finish(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	structured := req.Schema != nil || req.JSONMode
	if structured {
		text = stripFence(text)
	}
	content := json.RawMessage(text)

	switch {
	case stop == StopBlocked:
		return nil, &ErrInvalidResponse{Content: content, Err: errors.New("response blocked by the provider")}
	case stop == StopMaxTokens && structured:
		return nil, &ErrMaxTokensExceeded{Content: content}
	case structured && strings.TrimSpace(text) == "":
		return nil, &ErrInvalidResponse{Err: errors.New("empty response")}
	}

	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// stripFence removes a surrounding ``` or ```json fence.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	}
	return strings.TrimSpace(s)
}

// withJSONInstruction returns system with the JSON-only instruction added.
func withJSONInstruction(system string) string {
	if system == "" {
		return jsonModeInstruction
	}
	return system + "\n\n" + jsonModeInstruction
}
