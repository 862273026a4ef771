package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmColumns = []string{
	"provider", "model", "purpose", "session_id",
	"input_tokens", "output_tokens", "latency_ms",
	"success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	meta, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	return r.insert(ctx, tableLLMRequests, meta, llmColumns, []any{
		data.Provider, data.Model, data.Purpose, data.SessionID,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	})
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	query, args := selectEvents(tableLLMRequests, opts, llmColumns...)

	var out []LLMRequestRecord
	err := r.queryRows(ctx, query, args, func(rows *sql.Rows) error {
		var rec LLMRequestRecord
		dest, done := scanMeta(&rec.EventMeta)
		d := &rec.LLMRequestEventData
		dest = append(dest,
			&d.Provider, &d.Model, &d.Purpose, &d.SessionID,
			&d.InputTokens, &d.OutputTokens, &d.LatencyMs,
			&d.Success, &d.ErrorMessage, &d.RequestBody, &d.ResponseBody,
		)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		done()
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) (map[string]UsageTotals, error) {
	return r.usageBy(ctx, "model")
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) (map[string]UsageTotals, error) {
	return r.usageBy(ctx, "purpose")
}

// usageBy sums usage grouped by column.
func (r *eventRepo) usageBy(ctx context.Context, column string) (map[string]UsageTotals, error) {
	query, args := builder().
		Select(
			column,
			entsql.Count("*"),
			"SUM(`success` = 0)",
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
			entsql.Sum("latency_ms"),
		).
		From(entsql.Table(tableLLMRequests)).
		GroupBy(column).
		Query()

	out := make(map[string]UsageTotals)
	err := r.queryRows(ctx, query, args, func(rows *sql.Rows) error {
		var (
			key string
			t   UsageTotals
		)
		if err := rows.Scan(&key, &t.Requests, &t.Failures, &t.InputTokens, &t.OutputTokens, &t.LatencyMs); err != nil {
			return err
		}
		out[key] = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM usage by %s: %w", column, err)
	}
	return out, nil
}
