package defaults

import (
	"github.com/aretw0/indicator/pkg/axis"
	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/container"
	"github.com/aretw0/indicator/pkg/domain"
)

// gauge resolves the gauge block. Shape decides which alignment keeps its
// default: bullets leave title.align unset, angular gauges leave align unset.
func (p *pass) gauge() {
	if !p.flags.Gauge {
		p.b.Coerce("title.align", "center")
		p.b.Coerce("align", "center")
		p.out["_isBullet"] = false
		p.out["_isAngular"] = false
		return
	}

	g := p.b.Child("gauge")
	shape := g.Coerce("shape")

	isBullet := shape == domain.ShapeBullet
	p.out["_isBullet"] = isBullet
	if !isBullet {
		p.b.Coerce("title.align", "center")
	}
	isAngular := shape == domain.ShapeAngular
	p.out["_isAngular"] = isAngular
	if !isAngular {
		p.b.Coerce("align", "center")
	}

	g.Coerce("bgcolor", p.layout.PaperBgColor)
	g.Coerce("borderwidth")
	g.Coerce("bordercolor")

	g.Coerce("bar.color")
	g.Coerce("bar.line.color")
	g.Coerce("bar.line.width")
	thickness := domain.ValueThickness
	if isBullet {
		thickness *= 0.5
	}
	g.Coerce("bar.thickness", thickness)

	container.Resolve(g.In, g.Out, container.Options{
		Name:     "steps",
		Items:    g.Schema.Object("steps"),
		Handle:   stepDefaults,
		Template: g.Template,
		Prefix:   g.Prefix,
		Observer: g.Observer,
	})

	g.Coerce("threshold.value")
	g.Coerce("threshold.thickness")
	g.Coerce("threshold.line.width")
	g.Coerce("threshold.line.color")
}

// stepDefaults resolves one gauge step. Fields are independent and a step
// is never rejected.
func stepDefaults(step *container.Item) {
	step.Coerce("color")
	step.Coerce("line.color")
	step.Coerce("line.width")
	step.Coerce("range")
	step.Coerce("thickness")
}

// axes resolves the number, delta and gauge axes. Each gets its own input
// and output; all share the pass range.
func (p *pass) axes() {
	opts := axis.DefaultOptions(p.layout)
	base := axis.Context{
		Range:    p.rng,
		Layout:   p.layout,
		Observer: p.obs,
		Options:  opts,
	}
	attrs := axis.Attributes()

	if number, ok := p.out["number"].(map[string]any); ok && p.flags.Number {
		ctx := base
		ctx.Prefix = "number._axis"
		in := map[string]any{"tickformat": number["valueformat"]}
		number["_axis"] = p.resolver.Resolve(map[string]any{}, in, attrs, ctx)
	}

	if delta, ok := p.out["delta"].(map[string]any); ok && p.flags.Delta {
		ctx := base
		ctx.Prefix = "delta._axis"
		in := map[string]any{"tickformat": delta["valueformat"]}
		delta["_axis"] = p.resolver.Resolve(map[string]any{}, in, attrs, ctx)
	}

	if gauge, ok := p.out["gauge"].(map[string]any); ok && p.flags.Gauge {
		ctx := base
		ctx.Prefix = "gauge.axis"
		ctx.Template = coerce.NestedMap(p.tmpl, "gauge.axis")

		// Only keys the gauge axis exposes are read; the copy keeps the
		// caller's tree out of reach of the resolver.
		in := axis.Project(coerce.NestedMap(p.in, "gauge.axis"), axis.GaugeKeys)
		full := p.resolver.Resolve(map[string]any{}, in, attrs, ctx)

		gauge["_axis"] = full
		gauge["axis"] = axis.Project(full, axis.GaugeKeys)
	}
}
