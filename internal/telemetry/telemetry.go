// Package telemetry installs the OpenTelemetry tracer provider. Spans are
// written by the stdout exporter to a file, so tracing never draws over the
// terminal UI.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"
)

// ServiceName identifies this program in exported spans.
const ServiceName = "vidya"

// Config controls tracing.
type Config struct {
	Enabled     bool    `mapstructure:"enabled"`
	File        string  `mapstructure:"file"`         // span output; required when enabled
	SampleRatio float64 `mapstructure:"sample_ratio"` // 0..1
}

// DefaultConfig returns tracing disabled with full sampling once enabled.
func DefaultConfig() Config {
	return Config{SampleRatio: 1}
}

// Validate checks that an enabled config names an output file and a
// sample ratio in range.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.File == "" {
		return errors.New("telemetry file is required when tracing is enabled")
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio %v out of range [0, 1]", c.SampleRatio)
	}
	return nil
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider according to cfg. When tracing
// is disabled the global no-op provider stays in place.
func Setup(ctx context.Context, cfg Config, version string, logger *zap.Logger) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}

	tp, err := newProvider(ctx, f, cfg.SampleRatio, version)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	otel.SetTracerProvider(tp)

	if logger != nil {
		logger.Info("tracing enabled", zap.String("file", cfg.File), zap.Float64("sample_ratio", cfg.SampleRatio))
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), f.Close())
	}, nil
}

// newProvider builds a tracer provider exporting to w.
func newProvider(ctx context.Context, w io.Writer, ratio float64, version string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(ServiceName),
		semconv.ServiceVersionKey.String(version),
	))
	if err != nil {
		return nil, fmt.Errorf("creating trace resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(res),
	), nil
}
