/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng := indicator.New(indicator.WithLifecycleHooks(metrics.Hooks()))

Hooks can be combined with caller hooks through Chain.
*/
package observability
