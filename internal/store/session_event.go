package store

import (
	"context"
	"database/sql"
	"fmt"
)

var sessionColumns = []string{
	"session_id", "action", "lesson_id", "language",
	"messages", "questions", "correct", "score", "fallback",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	meta, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	return r.insert(ctx, tableSessions, meta, sessionColumns, []any{
		data.SessionID, data.Action, data.LessonID, data.Language,
		data.Messages, data.Questions, data.Correct, data.Score, data.Fallback,
	})
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query, args := selectEvents(tableSessions, opts, sessionColumns...)

	var out []SessionEventRecord
	err := r.queryRows(ctx, query, args, func(rows *sql.Rows) error {
		var rec SessionEventRecord
		dest, done := scanMeta(&rec.EventMeta)
		d := &rec.SessionEventData
		dest = append(dest,
			&d.SessionID, &d.Action, &d.LessonID, &d.Language,
			&d.Messages, &d.Questions, &d.Correct, &d.Score, &d.Fallback,
		)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		done()
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return out, nil
}
