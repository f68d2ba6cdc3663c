package axis

import "github.com/aretw0/indicator/pkg/schema"

// GaugeKeys are the axis attributes a gauge exposes to callers. Everything
// else the resolver computes stays internal.
var GaugeKeys = []string{
	"range", "visible",
	"tickmode", "nticks", "tick0", "dtick", "tickvals", "ticktext",
	"ticks", "ticklen", "tickwidth", "tickcolor",
	"showticklabels", "tickfont", "tickangle", "tickformat", "tickformatstops",
	"tickprefix", "showtickprefix", "ticksuffix", "showticksuffix",
	"separatethousands", "exponentformat", "minexponent", "showexponent",
	"ticklabelstep",
}

var attributes = buildAttributes()

// Attributes returns the schema of a linear cartesian axis. The returned
// value is shared and must not be modified.
func Attributes() schema.Object {
	return attributes
}

// GaugeAttributes returns the subset of Attributes named by GaugeKeys.
func GaugeAttributes() schema.Object {
	subset := make(schema.Object, len(GaugeKeys))
	for _, key := range GaugeKeys {
		if node, ok := attributes[key]; ok {
			subset[key] = node
		}
	}
	return subset
}

func buildAttributes() schema.Object {
	showAttr := schema.Enumerated("all", "first", "last", "none")

	return schema.Object{
		"visible": &schema.Attr{Type: schema.Bool(), Default: true,
			Description: "Whether the axis is drawn."},
		"range": &schema.Attr{Type: schema.InfoArray(schema.Number(), schema.Number()),
			Description: "Shared [lo, hi] scale of the indicator."},

		"tickmode": &schema.Attr{Type: schema.Enumerated("auto", "linear", "array"),
			Description: "How ticks are placed: from nticks, from tick0/dtick or from tickvals."},
		"nticks": &schema.Attr{Type: schema.Integer(schema.Min(0)), Default: 0,
			Description: "Maximum number of ticks in auto mode; 0 lets the axis decide."},
		"tick0": &schema.Attr{Type: schema.Number(), Default: 0.0,
			Description: "First tick in linear mode."},
		"dtick": &schema.Attr{Type: schema.Number(schema.Positive()),
			Description: "Tick step in linear mode."},
		"tickvals": &schema.Attr{Type: schema.DataArray(),
			Description: "Tick positions in array mode."},
		"ticktext": &schema.Attr{Type: schema.DataArray(),
			Description: "Tick labels in array mode."},

		"ticks": &schema.Attr{Type: schema.Enumerated("outside", "inside", ""),
			Description: "Where tick marks are drawn; empty hides them."},
		"ticklen":   &schema.Attr{Type: schema.Number(schema.Min(0)), Default: 5.0},
		"tickwidth": &schema.Attr{Type: schema.Number(schema.Min(0)), Default: 1.0},
		"tickcolor": &schema.Attr{Type: schema.Color(), Default: "#444"},

		"showticklabels": &schema.Attr{Type: schema.Bool(), Default: true},
		"tickfont": schema.Object{
			"family": &schema.Attr{Type: schema.String(schema.StringOptions{NoBlank: true, Strict: true})},
			"size":   &schema.Attr{Type: schema.Number(schema.Min(1))},
			"color":  &schema.Attr{Type: schema.Color()},
		},
		"tickangle":  &schema.Attr{Type: schema.Angle(), Default: "auto"},
		"tickformat": &schema.Attr{Type: schema.String(), Default: "",
			Description: "d3-style format applied to tick labels."},
		"tickformatstops": &schema.Array{
			Description: "Tick formats that apply within a dtick range.",
			Items: schema.Object{
				"enabled":    &schema.Attr{Type: schema.Bool(), Default: true},
				"dtickrange": &schema.Attr{Type: schema.InfoArray(schema.Any(), schema.Any())},
				"value":      &schema.Attr{Type: schema.String(), Default: ""},
				"name":       &schema.Attr{Type: schema.String()},
			},
		},
		"tickprefix":        &schema.Attr{Type: schema.String(), Default: ""},
		"showtickprefix":    &schema.Attr{Type: showAttr, Default: "all"},
		"ticksuffix":        &schema.Attr{Type: schema.String(), Default: ""},
		"showticksuffix":    &schema.Attr{Type: showAttr, Default: "all"},
		"separatethousands": &schema.Attr{Type: schema.Bool(), Default: false},
		"exponentformat": &schema.Attr{Type: schema.Enumerated("none", "e", "E", "power", "SI", "B"), Default: "B",
			Description: "Notation used for large or small tick values."},
		"minexponent":   &schema.Attr{Type: schema.Number(schema.Min(0)), Default: 3.0},
		"showexponent":  &schema.Attr{Type: showAttr, Default: "all"},
		"ticklabelstep": &schema.Attr{Type: schema.Integer(schema.Min(1)), Default: 1},

		"color":     &schema.Attr{Type: schema.Color(), Default: "#444"},
		"showline":  &schema.Attr{Type: schema.Bool()},
		"linecolor": &schema.Attr{Type: schema.Color(), Default: "#444"},
		"linewidth": &schema.Attr{Type: schema.Number(schema.Min(0)), Default: 1.0},
		"showgrid":  &schema.Attr{Type: schema.Bool()},
		"gridcolor": &schema.Attr{Type: schema.Color(), Default: "#eee"},
		"gridwidth": &schema.Attr{Type: schema.Number(schema.Min(0)), Default: 1.0},

		"showspikes":     &schema.Attr{Type: schema.Bool(), Default: false},
		"spikecolor":     &schema.Attr{Type: schema.Color()},
		"spikethickness": &schema.Attr{Type: schema.Number(), Default: 3.0},
		"tickson":        &schema.Attr{Type: schema.Enumerated("labels", "boundaries"), Default: "labels"},

		"side":     &schema.Attr{Type: schema.Enumerated("top", "bottom", "left", "right")},
		"anchor":   &schema.Attr{Type: schema.Enumerated("free"), Default: "free"},
		"position": &schema.Attr{Type: schema.Number(schema.Bounds(0, 1)), Default: 0.0},
		"domain": &schema.Attr{Type: schema.InfoArray(schema.Number(schema.Bounds(0, 1)), schema.Number(schema.Bounds(0, 1))),
			Default: []any{0.0, 1.0}},
	}
}
