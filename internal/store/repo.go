package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string // lesson session, empty for teacher and admin calls
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	EventMeta
	LLMRequestEventData
}

// Session event actions.
const (
	ActionLessonStarted = "lesson_started"
	ActionQuizStarted   = "quiz_started"
	ActionQuizCompleted = "quiz_completed"
	ActionReturned      = "returned"
)

// SessionEventData captures a lesson session lifecycle transition.
type SessionEventData struct {
	SessionID string
	Action    string
	LessonID  string
	Language  string
	Messages  int
	Questions int
	Correct   int
	Score     int
	Fallback  bool
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	EventMeta
	SessionEventData
}

// UsageTotals aggregates token usage across LLM requests.
type UsageTotals struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSessionEvent records a lesson session transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryLLMRequests returns LLM request events, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// LLMUsageByModel aggregates token usage per serving model.
	LLMUsageByModel(ctx context.Context) (map[string]UsageTotals, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) (map[string]UsageTotals, error)
}
