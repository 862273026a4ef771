package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// errNoResponse is returned, wrapped as unavailable, once the queue is empty.
var errNoResponse = errors.New("no canned response left")

// MockResponse is one canned answer. When Gate is set the call blocks
// until Gate is closed or the request context ends.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
	Gate    <-chan struct{}
}

// MockProvider answers from a FIFO queue of canned responses and records
// every request. With an empty queue it behaves like an unreachable
// model, which is how the app runs without credentials.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	purposes  []string
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate pops the next canned response.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.purposes = append(m.purposes, PurposeFrom(ctx))
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errNoResponse}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Gate != nil {
		select {
		case <-resp.Gate:
		case <-ctx.Done():
			return nil, &ErrProviderUnavailable{Err: ctx.Err()}
		}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// Name returns "mock".
func (m *MockProvider) Name() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Purposes returns the purpose label of each call, in call order.
func (m *MockProvider) Purposes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.purposes))
	copy(out, m.purposes)
	return out
}
