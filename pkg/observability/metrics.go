package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/indicator/pkg/domain"
)

// Metrics counts defaulting passes and the values they replaced.
type Metrics struct {
	Passes    *prometheus.CounterVec
	Fallbacks *prometheus.CounterVec
	Duration  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indicator_passes_total",
				Help: "Total number of defaulting passes, by resolved mode",
			},
			[]string{"mode"},
		),
		Fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "indicator_fallbacks_total",
				Help: "Caller values that were present but replaced",
			},
			[]string{"attribute"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "indicator_pass_duration_seconds",
				Help:    "Duration of one defaulting pass",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Passes, m.Fallbacks, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks feeding m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPassEnd: func(_ context.Context, e *domain.PassEvent) {
			m.Passes.WithLabelValues(e.Mode).Inc()
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnFallback: func(_ context.Context, e *domain.FallbackEvent) {
			m.Fallbacks.WithLabelValues(e.Path).Inc()
		},
	}
}

// Chain calls every non-nil hook of each set, in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnPassStart = chainPass(out.OnPassStart, h.OnPassStart)
		out.OnPassEnd = chainPass(out.OnPassEnd, h.OnPassEnd)
		out.OnFallback = chainFallback(out.OnFallback, h.OnFallback)
	}
	return out
}

func chainPass(a, b func(context.Context, *domain.PassEvent)) func(context.Context, *domain.PassEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.PassEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainFallback(a, b func(context.Context, *domain.FallbackEvent)) func(context.Context, *domain.FallbackEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.FallbackEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
