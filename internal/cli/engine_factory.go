package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/observability"
)

// Options are the flags shared by every command.
type Options struct {
	// Dir is the loam workspace holding stored documents.
	Dir   string
	Debug bool
	// Format is the output format: json, yaml or markdown. Empty picks
	// markdown on a terminal and json otherwise.
	Format string
	// InputFormat is the format of documents read from stdin.
	InputFormat string
	// Private keeps internal keys in the output.
	Private     bool
	Parallelism int
	// RedisAddr switches the document store from the workspace to Redis.
	RedisAddr string
	// RedisTTL expires documents pushed to Redis; zero keeps them.
	RedisTTL time.Duration
}

// createEngine initializes an engine with standard CLI conventions.
// A non-nil reg receives the engine metrics.
func createEngine(opts Options, logger *slog.Logger, reg prometheus.Registerer) *indicator.Engine {
	engineOpts := []indicator.Option{
		indicator.WithLogger(logger),
		indicator.WithParallelism(opts.Parallelism),
	}

	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}
	if reg != nil {
		hooks = append(hooks, observability.NewMetrics(reg).Hooks())
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, indicator.WithLifecycleHooks(observability.Chain(hooks...)))
	}

	return indicator.New(engineOpts...)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPassStart: func(ctx context.Context, e *domain.PassEvent) {
			logger.Debug("Pass Start", "trace", e.Trace)
		},
		OnPassEnd: func(ctx context.Context, e *domain.PassEvent) {
			logger.Debug("Pass End", "trace", e.Trace, "mode", e.Mode, "fallbacks", e.Fallbacks, "duration", e.Duration)
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			logger.Debug("Fallback", "trace", e.Trace, "path", e.Path, "input", e.Input, "output", e.Output)
		},
	}
}
