package content

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/vidya/internal/llm"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Reply
	}{
		{"structured", `{"text":"Well done! ⭐","visual_keyword":"gold star"}`, Reply{Text: "Well done! ⭐", VisualKeyword: "gold star"}},
		{"no keyword", `{"text":"Try again!"}`, Reply{Text: "Try again!"}},
		{"empty keyword", `{"text":"Yes","visual_keyword":""}`, Reply{Text: "Yes"}},
		{"fenced", "```json\n{\"text\":\"Fenced\",\"visual_keyword\":\"cat\"}\n```", Reply{Text: "Fenced", VisualKeyword: "cat"}},
		{"plain text", "Just words", Reply{Text: "Just words"}},
		{"broken JSON", `{"text": "unterminated`, Reply{Text: `{"text": "unterminated`}},
		{"empty text falls back to raw", `{"text":"","visual_keyword":"dog"}`, Reply{Text: `{"text":"","visual_keyword":"dog"}`}},
		{"wrong shape", `["a","b"]`, Reply{Text: `["a","b"]`}},
		{"surrounding whitespace", "  hello \n", Reply{Text: "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReply(tt.raw))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, ErrProviderUnavailable},
		{"unavailable", &llm.ErrProviderUnavailable{}, ErrProviderUnavailable},
		{"deadline", context.DeadlineExceeded, ErrProviderUnavailable},
		{"unknown", errors.New("boom"), ErrProviderUnavailable},
		{"invalid", &llm.ErrInvalidResponse{Err: errors.New("bad")}, ErrMalformedResponse},
		{"max tokens", &llm.ErrMaxTokensExceeded{}, ErrMalformedResponse},
		{"wrapped invalid", fmt.Errorf("outer: %w", &llm.ErrInvalidResponse{Err: errors.New("bad")}), ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, Classify(nil))
	already := fmt.Errorf("x: %w", ErrMalformedResponse)
	assert.Same(t, already, Classify(already))
	assert.Equal(t, "malformed", Kind(already))
	assert.Equal(t, "unavailable", Kind(Classify(errors.New("x"))))
}

// purposeRecorder records the purpose label of every request and fails it.
type purposeRecorder struct {
	purposes []string
}

func (p *purposeRecorder) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return nil, &llm.ErrProviderUnavailable{}
}

func (p *purposeRecorder) ModelID() string { return "recorder" }
