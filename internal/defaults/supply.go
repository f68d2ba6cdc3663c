// Package defaults resolves one indicator trace into a fully populated
// output tree.
//
// A pass reads the caller's trace and the layout, never writes to either,
// and owns the output tree it returns. Malformed values never abort a pass;
// they are replaced by defaults and reported to the Observer.
package defaults

import (
	"github.com/aretw0/indicator/pkg/axis"
	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/placement"
	"github.com/aretw0/indicator/pkg/schema"
)

// Context is what a pass reads besides the trace itself.
type Context struct {
	Layout domain.Layout
	// Index is the trace position in its document; it selects the template.
	Index    int
	Observer coerce.Observer
}

// Supplier runs defaulting passes. It holds no per-pass state and is safe
// for concurrent use.
type Supplier struct {
	schema   schema.Object
	resolver *axis.Resolver
}

// New returns a Supplier. A nil schema or resolver selects the standard one.
func New(s schema.Object, resolver *axis.Resolver) *Supplier {
	if s == nil {
		s = Attributes()
	}
	if resolver == nil {
		resolver = axis.NewResolver()
	}
	return &Supplier{schema: s, resolver: resolver}
}

// Schema returns the trace schema the Supplier resolves against.
func (s *Supplier) Schema() schema.Object {
	return s.schema
}

// pass is the state of one defaulting pass.
type pass struct {
	*Supplier
	in     map[string]any
	out    map[string]any
	b      *coerce.Binding
	layout domain.Layout
	obs    coerce.Observer
	tmpl   map[string]any

	flags Flags
	rng   [2]float64

	numberSize, deltaSize float64
	autoNumber, autoDelta bool
}

// Supply resolves traceIn and returns the output tree. Zero layout fields
// read as their DefaultLayout values.
func (s *Supplier) Supply(traceIn map[string]any, ctx Context) map[string]any {
	out := map[string]any{"type": domain.TraceType}
	tmpl := ctx.Layout.TraceTemplate(ctx.Index)

	p := &pass{
		Supplier: s,
		in:       traceIn,
		out:      out,
		layout:   ctx.Layout.WithDefaults(),
		obs:      ctx.Observer,
		tmpl:     tmpl,
		b: &coerce.Binding{
			In:       traceIn,
			Out:      out,
			Schema:   s.schema,
			Template: tmpl,
			Observer: ctx.Observer,
		},
	}

	placement.Defaults(p.b, p.layout, placement.FullPaper)
	p.mode()
	p.value()
	p.number()
	p.delta()
	out["_scaleNumbers"] = (!p.flags.Number || p.autoNumber) && (!p.flags.Delta || p.autoDelta)
	p.title()
	p.gauge()
	p.axes()

	return out
}

func (p *pass) mode() {
	mode, _ := p.b.Coerce("mode").(string)
	p.flags = ParseMode(mode)
	p.out["_hasNumber"] = p.flags.Number
	p.out["_hasDelta"] = p.flags.Delta
	p.out["_hasGauge"] = p.flags.Gauge
}

// value resolves value and, from it, the range shared by every axis. A
// missing value counts as 0 for the range. Invalid input bounds fall back to
// the template's bounds before the value-derived ones.
func (p *pass) value() {
	value, _ := p.b.Coerce("value").(float64)

	raw, _ := coerce.Get(p.in, "gauge.axis.range")
	tmpl, _ := coerce.Get(p.tmpl, "gauge.axis.range")
	p.rng = SharedRange(raw, tmpl, value)
}

func (p *pass) number() {
	if !p.flags.Number {
		return
	}
	b := p.b
	b.Coerce("number.valueformat")
	b.Coerce("number.font.color", p.layout.Font.Color)
	b.Coerce("number.font.family", p.layout.Font.Family)
	if size, ok := b.Coerce("number.font.size").(float64); ok {
		p.numberSize = size
	} else {
		p.numberSize = domain.DefaultNumberFontSize
		p.autoNumber = true
		b.Set("number.font.size", p.numberSize)
	}
	b.Coerce("number.prefix")
	b.Coerce("number.suffix")
}

func (p *pass) delta() {
	if !p.flags.Delta {
		return
	}
	b := p.b
	b.Coerce("delta.font.color", p.layout.Font.Color)
	b.Coerce("delta.font.family", p.layout.Font.Family)
	if size, ok := b.Coerce("delta.font.size").(float64); ok {
		p.deltaSize = size
	} else {
		factor := 1.0
		if p.flags.Number {
			factor = 0.5
		}
		p.deltaSize = factor * firstPositive(p.numberSize, domain.DefaultNumberFontSize)
		p.autoDelta = true
		b.Set("delta.font.size", p.deltaSize)
	}

	b.Coerce("delta.reference", p.out["value"])
	format := ""
	if b.Coerce("delta.relative") == true {
		format = domain.RelativeDeltaFormat
	}
	b.Coerce("delta.valueformat", format)
	b.Coerce("delta.increasing.symbol")
	b.Coerce("delta.increasing.color")
	b.Coerce("delta.decreasing.symbol")
	b.Coerce("delta.decreasing.color")
	b.Coerce("delta.position")
}

func (p *pass) title() {
	b := p.b
	b.Coerce("title.font.color", p.layout.Font.Color)
	b.Coerce("title.font.family", p.layout.Font.Family)
	b.Coerce("title.font.size", 0.25*firstPositive(p.numberSize, p.deltaSize, domain.DefaultNumberFontSize))
	b.Coerce("title.text")
}

func firstPositive(sizes ...float64) float64 {
	for _, s := range sizes {
		if s > 0 {
			return s
		}
	}
	return 0
}
