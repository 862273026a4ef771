package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

func okResponse() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"ok":true}`)}
}

func failWith(err error) MockResponse {
	return MockResponse{Err: err}
}

func TestRetry(t *testing.T) {
	down := func() error { return &ErrProviderUnavailable{Err: errors.New("down")} }
	bad := func() error { return &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")} }

	tests := []struct {
		name      string
		cfg       RetryConfig
		responses []MockResponse
		wantCalls int
		wantErr   any // pointer to the expected error type, nil for success
	}{
		{"first attempt", fastRetry(), []MockResponse{okResponse()}, 1, nil},
		{"transient then success", fastRetry(), []MockResponse{failWith(down()), okResponse()}, 2, nil},
		{"all attempts fail", fastRetry(), []MockResponse{failWith(down()), failWith(down()), failWith(down()), okResponse()}, 3, new(*ErrProviderUnavailable)},
		{"rate limit waits then succeeds", fastRetry(), []MockResponse{
			failWith(&ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}), okResponse(),
		}, 2, nil},
		{"max tokens is permanent", fastRetry(), []MockResponse{failWith(&ErrMaxTokensExceeded{}), okResponse()}, 1, new(*ErrMaxTokensExceeded)},
		{"auth is permanent", fastRetry(), []MockResponse{failWith(&ErrAuth{StatusCode: 401, Err: errors.New("bad key")}), okResponse()}, 1, new(*ErrAuth)},
		{"invalid response retried once", fastRetry(), []MockResponse{failWith(bad()), failWith(bad()), okResponse()}, 2, new(*ErrInvalidResponse)},
		{"invalid then transient keeps going", fastRetry(), []MockResponse{failWith(bad()), failWith(down()), okResponse()}, 3, nil},
		{"zero attempts still calls once", RetryConfig{}, []MockResponse{failWith(down()), okResponse()}, 1, new(*ErrProviderUnavailable)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, tt.cfg).Generate(t.Context(), Request{})

			if got := mock.CallCount(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if tt.wantErr == nil {
				if err != nil || resp.Text() != `{"ok":true}` {
					t.Fatalf("got %q, %v", resp.Text(), err)
				}
				return
			}
			if !errors.As(err, tt.wantErr) {
				t.Fatalf("error = %T (%v), want %T", err, err, tt.wantErr)
			}
		})
	}
}

func TestRetry_CancelledContextMakesNoCall(t *testing.T) {
	mock := NewMockProvider(okResponse())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected no calls, got %d", mock.CallCount())
	}
}

func TestRetry_CancelDuringBackoff(t *testing.T) {
	mock := NewMockProvider(failWith(&ErrRateLimit{RetryAfter: time.Hour}), okResponse())
	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := fastRetry()
	for attempt := range 8 {
		d := cfg.delay(attempt, &ErrProviderUnavailable{})
		if d < 0 || d > cfg.MaxWait*6/5 {
			t.Fatalf("attempt %d: delay %v outside [0, %v]", attempt, d, cfg.MaxWait*6/5)
		}
	}
	if d := cfg.delay(0, &ErrRateLimit{RetryAfter: time.Second}); d != time.Second {
		t.Fatalf("expected RetryAfter to win, got %v", d)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if id := WithRetry(NewMockProvider(), fastRetry()).ModelID(); id != "mock" {
		t.Fatalf("expected 'mock', got %q", id)
	}
}
