// Package axis resolves linear axis descriptors.
//
// An indicator has up to three axes (number, delta and gauge) that share one
// numeric range but are otherwise resolved independently, each from its own
// input fragment into its own output map.
package axis

import (
	"math"

	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/schema"
)

// Context carries what an axis resolution reads besides its own input.
type Context struct {
	// Range is the shared, already validated [lo, hi] scale.
	Range [2]float64
	// Layout provides the inherited font and paper size.
	Layout domain.Layout
	// Template holds template values for this axis, if any.
	Template map[string]any
	// Prefix names the axis in reported events ("gauge.axis").
	Prefix   string
	Observer coerce.Observer
	Options  Options
}

// Resolver owns the order in which axis attributes are resolved.
type Resolver struct {
	Ticks     TickDefaults
	Converter Converter
}

// NewResolver returns a Resolver with the standard linear collaborators.
func NewResolver() *Resolver {
	return &Resolver{Ticks: Standard{}, Converter: Linear{}}
}

// DefaultOptions are the options indicator axes resolve with.
func DefaultOptions(layout domain.Layout) Options {
	return Options{
		Letter:     "x",
		Font:       layout.Font,
		BgColor:    layout.PaperBgColor,
		OuterTicks: true,
		NoHover:    true,
		NoTickson:  true,
	}
}

// Resolve fills out from in and returns it. The range is always ctx.Range
// and the type always linear; in is only read.
func (r *Resolver) Resolve(out, in map[string]any, attrs schema.Object, ctx Context) map[string]any {
	if out == nil {
		out = make(map[string]any)
	}
	ticks := r.Ticks
	if ticks == nil {
		ticks = Standard{}
	}
	converter := r.Converter
	if converter == nil {
		converter = Linear{}
	}

	lo, hi := ctx.Range[0], ctx.Range[1]
	out["_id"] = "x"
	out["type"] = "linear"
	out["range"] = []any{lo, hi}
	out["dtick"] = DefaultDTick(lo, hi)

	b := &coerce.Binding{
		In:       in,
		Out:      out,
		Schema:   attrs,
		Template: ctx.Template,
		Prefix:   ctx.Prefix,
		Observer: ctx.Observer,
	}
	b.Coerce("visible")

	converter.SetConvert(out, ctx.Layout)
	converter.PrepTicks(out)

	opts := ctx.Options
	ticks.LabelFormatIndependent(b, opts)
	ticks.TickValues(b, opts)
	ticks.LabelFormatDependent(b, opts)
	ticks.TickMarks(b, opts)
	ticks.Appearance(b, opts)
	ticks.Position(b, opts)

	return out
}

// DefaultDTick is a tenth of the span, or 1 for an empty span.
func DefaultDTick(lo, hi float64) float64 {
	if d := 0.1 * math.Abs(hi-lo); d > 0 && !math.IsInf(d, 0) {
		return d
	}
	return 1
}

// Project copies the keys that are set in resolved into a fresh map,
// keeping only the given allow-list.
func Project(resolved map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if v, ok := resolved[key]; ok && v != nil {
			out[key] = schema.Clone(v)
		}
	}
	return out
}

// Describe decodes a resolved axis map into its typed view.
func Describe(out map[string]any) (domain.Axis, error) {
	return domain.DecodeAxis(out)
}
