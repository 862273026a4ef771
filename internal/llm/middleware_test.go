package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/vidya/internal/store"
	"github.com/abhisek/vidya/internal/store/storetest"
)

func TestLogging_RecordsJournalEvent(t *testing.T) {
	repo := storetest.Open(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"text":"Great job!"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4, TotalTokens: 16},
	})
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(t.Context(), PurposeReply)
	_, err := p.Generate(ctx, Request{
		System:   "You are a tutor.",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := repo.QueryLLMRequests(t.Context(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Purpose != PurposeReply || !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Errorf("unexpected event: %+v", ev.LLMRequestEventData)
	}
	if ev.Model != "mock" || ev.Provider != "mock" {
		t.Errorf("provider/model = %q/%q, want mock/mock", ev.Provider, ev.Model)
	}
	if ev.SessionID != "" {
		t.Errorf("session = %q, want empty", ev.SessionID)
	}
	if !strings.Contains(ev.RequestBody, "[json mode]") || !strings.Contains(ev.RequestBody, "[user]\nhi") {
		t.Errorf("request body missing parts: %q", ev.RequestBody)
	}
}

func TestLogging_FailureLoggedAtWarn(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	repo := storetest.Open(t)
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	p := WithLogging(mock, repo, zap.New(core))

	_, err := p.Generate(WithPurpose(t.Context(), PurposeQuiz), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	warns := logs.FilterMessage("llm request failed").All()
	if len(warns) != 1 {
		t.Fatalf("expected 1 warn entry, got %d", len(warns))
	}
	if got := warns[0].ContextMap()["purpose"]; got != PurposeQuiz {
		t.Errorf("purpose field = %v, want %q", got, PurposeQuiz)
	}

	events, _ := repo.QueryLLMRequests(t.Context(), store.QueryOpts{})
	if len(events) != 1 || events[0].Success || events[0].ErrorMessage == "" {
		t.Fatalf("expected one failed event, got %+v", events)
	}
}

func TestLogging_TagsSessionAndProvider(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	repo := storetest.Open(t)
	p := WithLogging(blockingProvider{}, repo, zap.New(core))

	ctx, cancel := context.WithCancel(WithSession(WithPurpose(t.Context(), PurposeIntro), "sess-42"))
	cancel()
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, _ := repo.QueryLLMRequests(t.Context(), store.QueryOpts{})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].SessionID != "sess-42" {
		t.Errorf("session = %q", events[0].SessionID)
	}
	if events[0].Provider != "blocking" {
		t.Errorf("provider without a name falls back to model ID, got %q", events[0].Provider)
	}
	entry := logs.FilterMessage("llm request failed").All()
	if len(entry) != 1 || entry[0].ContextMap()["session_id"] != "sess-42" {
		t.Fatalf("expected session_id on the log line, got %+v", entry)
	}
}

func TestProviderName(t *testing.T) {
	if got := ProviderName(NewMockProvider()); got != "mock" {
		t.Errorf("ProviderName(mock) = %q", got)
	}
	if got := ProviderName(&GeminiProvider{model: "gemini-2.5-flash"}); got != "gemini" {
		t.Errorf("ProviderName(gemini) = %q", got)
	}
	if got := ProviderName(blockingProvider{}); got != "blocking" {
		t.Errorf("ProviderName(unnamed) = %q", got)
	}
}

func TestTracing_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"ok"`), Usage: Usage{InputTokens: 3}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithTracing(mock)

	ctx := WithPurpose(t.Context(), PurposeIntro)
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "llm.generate intro" {
		t.Errorf("span name = %q", spans[0].Name())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("first span should not be an error")
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("second span status = %v, want error", spans[1].Status().Code)
	}
}

func TestRateLimit_DisabledReturnsInner(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRateLimit(mock, RateLimitConfig{}); p != Provider(mock) {
		t.Fatal("expected the inner provider when limiting is disabled")
	}
}

func TestRateLimit_WaitHonoursContext(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"a"`)},
		MockResponse{Content: json.RawMessage(`"b"`)},
	)
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	if _, err := p.Generate(t.Context(), Request{}); err != nil {
		t.Fatalf("first request should use the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected the second request to be refused before its deadline")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call to reach the provider, got %d", mock.CallCount())
	}
}

// blockingProvider waits until ctx is done.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_AppliesDeadline(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)

	_, err := p.Generate(t.Context(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.ModelID() != "blocking" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider_MockChain(t *testing.T) {
	repo := storetest.Open(t)
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(t.Context(), cfg, repo, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q, want mock", p.ModelID())
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(t.Context(), Config{Provider: "palm"}, nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestWrap_RetriesAreJournaledIndividually(t *testing.T) {
	repo := storetest.Open(t)
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	cfg := Config{
		Retry: RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1},
	}
	p := Wrap(mock, cfg, repo, nil)

	if _, err := p.Generate(t.Context(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events, _ := repo.QueryLLMRequests(t.Context(), store.QueryOpts{})
	if len(events) != 2 {
		t.Fatalf("expected 2 journaled attempts, got %d", len(events))
	}
	if events[0].Success != true || events[1].Success != false {
		t.Errorf("unexpected success flags: newest=%v oldest=%v", events[0].Success, events[1].Success)
	}
}
