/*
Package indicator resolves sparse, partially invalid descriptions of gauge
style indicators into fully populated configuration trees.

An indicator trace combines up to three parts selected by its mode: a big
number, a delta against a reference value, and an angular or bullet gauge.
Many defaults depend on each other. The delta font is half the number font
when both are shown, the title font is a quarter of whichever is shown, and
the number, delta and gauge axes share one numeric range derived from the
value. The engine resolves them in a fixed order and never fails: anything
malformed is replaced by its default and reported.

# Usage

	eng := indicator.New(indicator.WithLogger(logger))

	res := eng.SupplyDefaults(ctx, map[string]any{
		"mode":  "number+gauge",
		"value": 42,
		"gauge": map[string]any{"axis": map[string]any{"range": []any{0, "oops"}}},
	}, domain.DefaultLayout())

	fmt.Println(res.Trace.Gauge.Axis.Range) // [0 63]
	for _, ev := range res.Replaced() {
		fmt.Println("replaced", ev.Path)
	}

Documents holding several traces are resolved concurrently with SupplyAll.
The caller's trees are only read, so one input may be shared across
goroutines.

# Packages

  - pkg/schema: attribute types and the trace schema description.
  - pkg/coerce: the read-validate-default-write primitive.
  - pkg/container: defaulting of object lists such as gauge steps.
  - pkg/axis: the linear axis resolver and its tick collaborators.
  - pkg/placement: domain and grid placement.
  - pkg/adapters: file, memory, loam workspace and Redis document stores,
    plus the HTTP and MCP front ends.
  - cmd/indicator: the command line (defaults, lint, serve, mcp, watch).
*/
package indicator
