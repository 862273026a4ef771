package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/llm"
)

// newOpenAIService serves every completion from a fixed message content
// and finish reason, so the real response contract of the adapter applies.
func newOpenAIService(t *testing.T, content, finishReason string) *Service {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(server.Close)

	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	require.NoError(t, err)
	return NewService(provider, DefaultConfig())
}

func TestAdapter_EmptyIntroIsNotAnError(t *testing.T) {
	svc := newOpenAIService(t, "", "stop")

	text, err := svc.GenerateIntro(t.Context(), "Shapes & Sizes", "UKG", catalog.LanguageEnglish)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestAdapter_EmptyInsightIsNotAnError(t *testing.T) {
	svc := newOpenAIService(t, "  \n", "stop")

	text, err := svc.GenerateInsight(t.Context(), catalog.SeedClassAnalytics())
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestAdapter_TruncatedReplyUsedVerbatim(t *testing.T) {
	partial := `{"text":"Great job! Two plus two is fo`
	svc := newOpenAIService(t, partial, "length")

	reply, err := svc.GenerateReply(t.Context(), nil, "what is 2+2?", "Numbers 1-100", "Class 1", catalog.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, partial, reply.Text)
	assert.Empty(t, reply.VisualKeyword)
}

func TestAdapter_TruncatedQuizStillFails(t *testing.T) {
	svc := newOpenAIService(t, `{"questions":[{"id":1,"question":"What`, "length")

	_, err := svc.GenerateQuiz(t.Context(), "Numbers 1-100", "Class 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	var truncated *llm.ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &truncated))
}

func TestAdapter_EmptyJSONReplyIsMalformed(t *testing.T) {
	svc := newOpenAIService(t, "", "stop")

	_, err := svc.GenerateReply(t.Context(), nil, "hi", "Numbers 1-100", "Class 1", catalog.LanguageEnglish)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
