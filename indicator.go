package indicator

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/indicator/internal/defaults"
	"github.com/aretw0/indicator/pkg/axis"
	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/schema"
)

// Engine is the high-level entry point for the indicator library.
// It wraps the defaulting passes with logging, hooks and concurrency.
type Engine struct {
	supplier    *defaults.Supplier
	schema      schema.Object
	ticks       axis.TickDefaults
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	parallelism int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTickDefaults replaces the tick and axis collaborators used for every axis.
func WithTickDefaults(ticks axis.TickDefaults) Option {
	return func(e *Engine) {
		e.ticks = ticks
	}
}

// WithSchema replaces the trace schema. The schema must describe every
// attribute the defaulting pass resolves.
func WithSchema(s schema.Object) Option {
	return func(e *Engine) {
		e.schema = s
	}
}

// WithParallelism bounds how many traces SupplyAll resolves at once
// (default: GOMAXPROCS).
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.parallelism <= 0 {
		eng.parallelism = runtime.GOMAXPROCS(0)
	}

	resolver := axis.NewResolver()
	if eng.ticks != nil {
		resolver.Ticks = eng.ticks
	}
	eng.supplier = defaults.New(eng.schema, resolver)
	return eng
}

// Schema returns the trace schema the engine resolves against.
func (e *Engine) Schema() schema.Object {
	return e.supplier.Schema()
}

// Result is one resolved trace.
type Result struct {
	// Index is the trace position in its document.
	Index int `json:"index"`
	// Out is the full output tree, private keys included.
	Out map[string]any `json:"-"`
	// Trace is the typed view of Out.
	Trace domain.Trace `json:"trace"`
	// Events lists one entry per resolved attribute, in resolution order.
	Events []coerce.Event `json:"-"`
}

// Replaced returns the caller values that were present but rejected.
func (r *Result) Replaced() []coerce.Event {
	var out []coerce.Event
	for _, ev := range r.Events {
		if ev.Reason == coerce.ReasonInvalid {
			out = append(out, ev)
		}
	}
	return out
}

// Lint checks traceIn against the schema without resolving it. The
// returned *schema.AggregateError lists every value defaulting would
// replace and every key it would ignore; nil means the trace is clean.
func (e *Engine) Lint(traceIn map[string]any) error {
	return schema.Validate(e.Schema(), traceIn)
}

// Public returns the resolved tree without private keys.
func (r *Result) Public() map[string]any {
	return coerce.Public(r.Out)
}

// SupplyDefaults resolves a single trace against layout. It never fails:
// malformed input is replaced by defaults and listed in Result.Replaced.
func (e *Engine) SupplyDefaults(ctx context.Context, traceIn map[string]any, layout domain.Layout) *Result {
	return e.supply(ctx, 0, traceIn, layout)
}

// SupplyAll resolves every trace of a document concurrently. Results keep
// document order. It fails only when the document layout cannot be decoded
// or ctx is cancelled.
func (e *Engine) SupplyAll(ctx context.Context, doc *domain.Document) ([]*Result, error) {
	if doc == nil || len(doc.Traces) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	layout, err := doc.ResolvedLayout()
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(doc.Traces))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, trace := range doc.Traces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.supply(gctx, i, trace, layout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) supply(ctx context.Context, index int, traceIn map[string]any, layout domain.Layout) *Result {
	logger := e.logger.With("trace", index)
	start := time.Now()

	if e.hooks.OnPassStart != nil {
		e.hooks.OnPassStart(ctx, &domain.PassEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventPassStart, Trace: index},
		})
	}

	fallbacks := 0
	rec := &coerce.Recorder{Next: coerce.ObserverFunc(func(ev coerce.Event) {
		switch ev.Reason {
		case coerce.ReasonInvalid:
			fallbacks++
			logger.Debug("value replaced", "path", ev.Path, "input", ev.Input, "output", ev.Output)
			if e.hooks.OnFallback != nil {
				e.hooks.OnFallback(ctx, &domain.FallbackEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFallback, Trace: index},
					Path:      ev.Path,
					Input:     ev.Input,
					Output:    ev.Output,
					Reason:    string(ev.Reason),
				})
			}
		case coerce.ReasonUnknown:
			logger.Debug("attribute not in schema", "path", ev.Path)
		}
	})}

	out := e.supplier.Supply(traceIn, defaults.Context{Layout: layout, Index: index, Observer: rec})

	trace, err := domain.DecodeTrace(out)
	if err != nil {
		logger.Warn("typed view unavailable", "error", err)
	}

	duration := time.Since(start)
	logger.Info("defaults supplied", "mode", trace.Mode, "fallbacks", fallbacks, "duration", duration)

	if e.hooks.OnPassEnd != nil {
		e.hooks.OnPassEnd(ctx, &domain.PassEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPassEnd, Trace: index},
			Mode:      trace.Mode,
			Duration:  duration,
			Fallbacks: fallbacks,
		})
	}

	return &Result{Index: index, Out: out, Trace: trace, Events: rec.Events}
}
