package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/vidya/internal/config"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/llm"
	"github.com/abhisek/vidya/internal/logging"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/store"
	"github.com/abhisek/vidya/internal/telemetry"
)

// deps holds everything a command needs, built once from flags and config.
type deps struct {
	cfg    config.Config
	logger *zap.Logger
	events store.EventRepo
	orch   *orchestrator.Orchestrator

	// offline is set when no model is configured; every generation then
	// takes its fallback path.
	offline bool

	closers []func(context.Context) error
}

// loadConfig reads the config file named by --config and applies the
// logging and tracing flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.Log.File = f
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if f, _ := cmd.Flags().GetString("trace-file"); f != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.File = f
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildDeps wires config, logging, tracing, the event journal, the LLM
// provider stack and the orchestrator. With tui set, logs go only to the
// configured file so they never draw over the screen; otherwise they also
// go to stderr.
func buildDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var console io.Writer
	if !tui {
		console = cmd.ErrOrStderr()
	}
	logger, closeLog, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	d := &deps{cfg: cfg, logger: logger}
	d.closers = append(d.closers, func(context.Context) error {
		_ = logger.Sync()
		return closeLog()
	})

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, buildVersion(), logger)
	if err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	d.closers = append(d.closers, shutdown)

	journal, err := store.OpenMemory()
	if err != nil {
		_ = d.Close(ctx)
		return nil, fmt.Errorf("open event journal: %w", err)
	}
	d.closers = append(d.closers, func(context.Context) error { return journal.Close() })
	d.events = journal.EventRepo()

	provider, err := newModel(ctx, cfg, d.events, logger)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Lessons will use built-in fallback content.")
		logger.Warn("llm unavailable, using fallbacks", zap.Error(err))
		provider = llm.NewMockProvider()
		d.offline = true
	}

	d.orch = orchestrator.New(orchestrator.Config{
		Events:   d.events,
		Logger:   logger,
		Provider: content.NewService(provider, cfg.Content),
	})
	return d, nil
}

// newModel builds the configured provider with its middleware chain.
func newModel(ctx context.Context, cfg config.Config, events store.EventRepo, logger *zap.Logger) (llm.Provider, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, cfg.LLM, events, logger.Named("llm"))
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close(ctx context.Context) error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i](ctx))
	}
	d.closers = nil
	return errors.Join(errs...)
}
