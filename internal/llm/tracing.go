package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/abhisek/vidya/internal/llm"

// TracingProvider is a decorator that wraps each request in an
// OpenTelemetry span.
type TracingProvider struct {
	inner  Provider
	tracer trace.Tracer
}

// WithTracing wraps a Provider with span creation using the global tracer
// provider. When no tracer provider is installed the spans are no-ops.
func WithTracing(p Provider) Provider {
	return &TracingProvider{inner: p, tracer: otel.Tracer(tracerName)}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	ctx, span := t.tracer.Start(ctx, "llm.generate "+purpose,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.purpose", purpose),
			attribute.String("llm.model", t.inner.ModelID()),
			attribute.Int("llm.messages", len(req.Messages)),
			attribute.Bool("llm.structured", req.Schema != nil),
			attribute.Int("llm.max_tokens", req.MaxTokens),
		),
	)
	defer span.End()
	if sid := SessionFrom(ctx); sid != "" {
		span.SetAttributes(attribute.String("vidya.session_id", sid))
	}

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
		attribute.String("llm.stop_reason", resp.StopReason),
	)
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}
