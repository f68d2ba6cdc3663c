package axis

import (
	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/container"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/schema"
)

// Options tune the tick and axis collaborators for one axis.
type Options struct {
	// Letter is "x" or "y"; it picks the default side.
	Letter string
	// Font is inherited by tick labels.
	Font domain.Font
	// BgColor is blended with the axis color for the grid color.
	BgColor string
	// OuterTicks turns tick marks on by default.
	OuterTicks bool
	// NoHover skips spike attributes, NoTickson skips tickson.
	NoHover   bool
	NoTickson bool
}

// TickDefaults resolves the tick and appearance attributes of an axis.
// The Resolver calls the methods in declaration order; the label passes
// are split around TickValues because format defaults depend on tickmode.
type TickDefaults interface {
	LabelFormatIndependent(b *coerce.Binding, opts Options)
	TickValues(b *coerce.Binding, opts Options)
	LabelFormatDependent(b *coerce.Binding, opts Options)
	TickMarks(b *coerce.Binding, opts Options)
	Appearance(b *coerce.Binding, opts Options)
	Position(b *coerce.Binding, opts Options)
}

// Standard is the TickDefaults used for linear axes.
type Standard struct{}

var _ TickDefaults = Standard{}

// LabelFormatIndependent resolves label attributes that do not depend on
// how ticks are placed.
func (Standard) LabelFormatIndependent(b *coerce.Binding, opts Options) {
	showAttrs := b.Coerce("showticklabels") == true
	if showAttrs {
		b.Coerce("tickfont.family", opts.Font.Family)
		b.Coerce("tickfont.size", opts.Font.Size)
		b.Coerce("tickfont.color", opts.Font.Color)
		b.Coerce("tickangle")
		b.Coerce("ticklabelstep")
	}

	if prefix, _ := b.Coerce("tickprefix").(string); prefix != "" {
		b.Coerce("showtickprefix")
	}
	if suffix, _ := b.Coerce("ticksuffix").(string); suffix != "" {
		b.Coerce("showticksuffix")
	}
}

// TickValues resolves tickmode and the attributes of the chosen mode.
func (Standard) TickValues(b *coerce.Binding, _ Options) {
	mode := "auto"
	if _, ok := schema.ToList(b.In["tickvals"]); ok {
		mode = "array"
	} else if b.Explicit("dtick") {
		mode = "linear"
	}

	switch b.Coerce("tickmode", mode) {
	case "auto":
		b.Coerce("nticks")
	case "linear":
		b.Coerce("tick0")
		b.Coerce("dtick", b.Out["dtick"])
	case "array":
		if b.Coerce("tickvals") == nil {
			b.Set("tickmode", "auto")
			b.Coerce("nticks")
			return
		}
		b.Coerce("ticktext")
	}
}

// LabelFormatDependent resolves number formatting once tickmode is known.
// Array ticks with explicit texts need no number formatting.
func (Standard) LabelFormatDependent(b *coerce.Binding, _ Options) {
	if b.Out["showticklabels"] != true {
		return
	}
	if b.Out["tickmode"] == "array" && b.Out["ticktext"] != nil {
		return
	}

	format, _ := b.Coerce("tickformat").(string)
	if format == "" {
		b.Coerce("showexponent")
		b.Coerce("exponentformat")
		b.Coerce("minexponent")
		b.Coerce("separatethousands")
	}

	if list, ok := schema.ToList(b.In["tickformatstops"]); ok && len(list) > 0 {
		container.Resolve(b.In, b.Out, container.Options{
			Name:     "tickformatstops",
			Items:    b.Schema.Object("tickformatstops"),
			Template: b.Template,
			Prefix:   b.Prefix,
			Observer: b.Observer,
			Handle: func(item *container.Item) {
				if item.Coerce("enabled") != true {
					item.Reject()
					return
				}
				item.Coerce("dtickrange")
				item.Coerce("value")
				item.Coerce("name")
			},
		})
	}
}

// TickMarks resolves mark placement and style. Hidden marks carry no style.
func (Standard) TickMarks(b *coerce.Binding, opts Options) {
	styled := b.Explicit("ticklen") || b.Explicit("tickwidth") || b.Explicit("tickcolor")
	dflt := ""
	if opts.OuterTicks || styled {
		dflt = "outside"
	}

	if b.Coerce("ticks", dflt) == "" {
		coerce.Delete(b.Out, "ticklen")
		coerce.Delete(b.Out, "tickwidth")
		coerce.Delete(b.Out, "tickcolor")
		return
	}
	b.Coerce("ticklen")
	b.Coerce("tickwidth")
	if color, ok := b.Out["color"]; ok {
		b.Coerce("tickcolor", color)
	} else {
		b.Coerce("tickcolor")
	}
}

// Appearance resolves colors, lines and grids. Line and grid styles are
// only kept when the line or grid is shown; they are shown by default when
// the caller styled them.
func (Standard) Appearance(b *coerce.Binding, opts Options) {
	color, _ := b.Coerce("color").(string)

	lineStyled := b.Explicit("linecolor") || b.Explicit("linewidth")
	if b.Coerce("showline", lineStyled) == true {
		b.Coerce("linecolor", color)
		b.Coerce("linewidth")
	}

	gridStyled := b.Explicit("gridcolor") || b.Explicit("gridwidth")
	if b.Coerce("showgrid", gridStyled) == true {
		b.Coerce("gridcolor", schema.Mix(color, opts.BgColor, 0.6, "#eee"))
		b.Coerce("gridwidth")
	}

	if !opts.NoHover {
		if b.Coerce("showspikes") == true {
			b.Coerce("spikecolor", color)
			b.Coerce("spikethickness")
		}
	}
	if !opts.NoTickson {
		b.Coerce("tickson")
	}
}

// Position resolves where the axis sits relative to its parent.
func (Standard) Position(b *coerce.Binding, opts Options) {
	if b.Coerce("anchor") == "free" {
		b.Coerce("position")
	}

	side := "bottom"
	if opts.Letter == "y" {
		side = "left"
	}
	b.Coerce("side", side)

	dflt := []any{0.0, 1.0}
	d, _ := b.Coerce("domain", dflt).([]any)
	if len(d) == 2 {
		lo, _ := schema.ToFloat(d[0])
		hi, _ := schema.ToFloat(d[1])
		if lo > hi-1.0/4096 {
			b.Set("domain", dflt)
		}
	}
}
