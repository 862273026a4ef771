package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func quizItemSchema() *Schema {
	return &Schema{
		Name:        "test-quiz-item",
		Description: "A single quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0},
				"subject":            map[string]any{"type": "string", "enum": []any{"Math", "English", "Tamil", "Hindi"}},
			},
			"required": []any{"question", "options", "correctAnswerIndex"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"What comes after 2?","options":["1","3"],"correctAnswerIndex":1,"subject":"Math"}`, false},
		{"valid without optional", `{"question":"Pick the noun","options":["run","cat"],"correctAnswerIndex":1}`, false},
		{"missing required", `{"question":"Pick one"}`, true},
		{"wrong type", `{"question":"Pick one","options":["a","b"],"correctAnswerIndex":"one"}`, true},
		{"negative index", `{"question":"Pick one","options":["a","b"],"correctAnswerIndex":-1}`, true},
		{"too few options", `{"question":"Pick one","options":["a"],"correctAnswerIndex":0}`, true},
		{"invalid enum", `{"question":"Pick one","options":["a","b"],"correctAnswerIndex":0,"subject":"Art"}`, true},
		{"wrong item type", `{"question":"Pick one","options":[1,2],"correctAnswerIndex":0}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizItemSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("error content = %q, want %q", invErr.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`plain tutor text`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CachedByName(t *testing.T) {
	schema := quizItemSchema()
	schema.Name = "test-quiz-item-cache"
	raw := json.RawMessage(`{"question":"q","options":["a","b"],"correctAnswerIndex":0}`)

	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if _, ok := compiledSchemas.Load(schema.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
	if err := validateResponse(schema, raw); err != nil {
		t.Fatalf("cached validation: %v", err)
	}
}

func TestCompileSchema_RejectsBrokenDefinition(t *testing.T) {
	_, err := CompileSchema(&Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": "no-such-type"},
	})
	if err == nil {
		t.Fatal("expected compile error")
	}
	if _, ok := compiledSchemas.Load("test-broken"); ok {
		t.Fatal("broken schema must not be cached")
	}
}

func TestFinish(t *testing.T) {
	schema := quizItemSchema()
	schema.Name = "test-finish"
	valid := "```json\n{\"question\":\"q\",\"options\":[\"a\",\"b\"],\"correctAnswerIndex\":0}\n```"

	resp, err := finish(Request{Schema: schema}, valid, Usage{TotalTokens: 3}, "m", StopEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text()[0] != '{' || resp.Model != "m" || resp.Usage.TotalTokens != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}

	if _, err := finish(Request{JSONMode: true}, "  ", Usage{}, "m", StopEnd); err == nil {
		t.Error("blank structured output should be invalid")
	}
	resp, err = finish(Request{}, "  ", Usage{}, "m", StopEnd)
	if err != nil {
		t.Fatalf("blank plain text should pass through, got %v", err)
	}
	if strings.TrimSpace(resp.Text()) != "" {
		t.Errorf("blank plain text = %q", resp.Text())
	}
	if _, err := finish(Request{}, "", Usage{}, "m", StopBlocked); err == nil {
		t.Error("blocked output should be invalid even as plain text")
	}
	resp, err = finish(Request{}, "```go\nfmt.Println()\n```", Usage{}, "m", StopEnd)
	if err != nil || resp.Text() != "```go\nfmt.Println()\n```" {
		t.Errorf("plain text must keep its fences, got %q (%v)", resp.Text(), err)
	}
}

func TestStripFence(t *testing.T) {
	tests := map[string]string{
		"{\"a\":1}":               "{\"a\":1}",
		"```json\n{\"a\":1}\n```": "{\"a\":1}",
		"```\n[1,2]\n```":         "[1,2]",
		"```{\"a\":1}```":         "{\"a\":1}",
		"```":                     "```",
	}
	for in, want := range tests {
		if got := stripFence(in); got != want {
			t.Errorf("stripFence(%q) = %q, want %q", in, got, want)
		}
	}
}
