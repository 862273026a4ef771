package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableLLMRequests = "llm_request_events"
	tableSessions    = "session_events"
)

// schema creates one table per event kind. Every table carries the global
// sequence and a UTC timestamp in Unix nanoseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL DEFAULT '',
		model         TEXT    NOT NULL DEFAULT '',
		purpose       TEXT    NOT NULL DEFAULT '',
		session_id    TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llmrequestevent_timestamp ON llm_request_events (timestamp)`,
	`CREATE INDEX IF NOT EXISTS llmrequestevent_purpose ON llm_request_events (purpose)`,
	`CREATE INDEX IF NOT EXISTS llmrequestevent_model ON llm_request_events (model)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence   INTEGER NOT NULL UNIQUE,
		timestamp  INTEGER NOT NULL,
		session_id TEXT    NOT NULL,
		action     TEXT    NOT NULL,
		lesson_id  TEXT    NOT NULL DEFAULT '',
		language   TEXT    NOT NULL DEFAULT '',
		messages   INTEGER NOT NULL DEFAULT 0,
		questions  INTEGER NOT NULL DEFAULT 0,
		correct    INTEGER NOT NULL DEFAULT 0,
		score      INTEGER NOT NULL DEFAULT 0,
		fallback   BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS sessionevent_timestamp ON session_events (timestamp)`,
	`CREATE INDEX IF NOT EXISTS sessionevent_session_id ON session_events (session_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
