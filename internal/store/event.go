package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event kind lives in its own table, so per-table
// row IDs can't establish cross-type ordering (did the quiz start before or
// after that reply?). The RETURNING clause makes the increment atomic.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the next sequence number. The first value is 1.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// EventMeta is embedded in every stored event record.
type EventMeta struct {
	Sequence  int64
	Timestamp time.Time
}

// eventRepo implements EventRepo on SQLite. Statements are built with the
// ent SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// stamp allocates the sequence and timestamp for a new event.
func (r *eventRepo) stamp(ctx context.Context) (EventMeta, error) {
	if err := ctx.Err(); err != nil {
		return EventMeta{}, err
	}
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return EventMeta{}, err
	}
	return EventMeta{Sequence: seq, Timestamp: r.now().UTC()}, nil
}

// insert appends one row: the event meta followed by cols/vals.
func (r *eventRepo) insert(ctx context.Context, table string, meta EventMeta, cols []string, vals []any) error {
	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{meta.Sequence, meta.Timestamp.UnixNano()}, vals...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over table filtered by opts.
// The selected columns start with sequence and timestamp.
func selectEvents(table string, opts QueryOpts, cols ...string) (string, []any) {
	sel := builder().
		Select(append([]string{"sequence", "timestamp"}, cols...)...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel.Query()
}

// scanMeta returns scan targets for the leading sequence and timestamp
// columns, and a func that converts them once the row is scanned.
func scanMeta(m *EventMeta) ([]any, func()) {
	var nanos int64
	return []any{&m.Sequence, &nanos}, func() {
		m.Timestamp = time.Unix(0, nanos).UTC()
	}
}

// queryRows runs query and calls scan for each row. Rows are closed before
// returning so the single connection is free for the next statement.
func (r *eventRepo) queryRows(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
