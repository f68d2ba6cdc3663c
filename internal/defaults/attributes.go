package defaults

import (
	"github.com/aretw0/indicator/pkg/axis"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/placement"
	"github.com/aretw0/indicator/pkg/schema"
)

var attributes = buildAttributes()

// Attributes returns the indicator trace schema. The returned value is
// shared and must not be modified.
func Attributes() schema.Object {
	return attributes
}

func fontAttributes(what string) schema.Object {
	return schema.Object{
		"family": &schema.Attr{Type: schema.String(schema.StringOptions{NoBlank: true, Strict: true}),
			Description: "Font family of the " + what + "; defaults to the layout font."},
		"size": &schema.Attr{Type: schema.Number(schema.Min(1)),
			Description: "Font size of the " + what + "."},
		"color": &schema.Attr{Type: schema.Color(),
			Description: "Font color of the " + what + "; defaults to the layout font."},
	}
}

func lineAttributes(color string, width float64) schema.Object {
	return schema.Object{
		"color": &schema.Attr{Type: schema.Color(), Default: color},
		"width": &schema.Attr{Type: schema.Number(schema.Min(0)), Default: width},
	}
}

func buildAttributes() schema.Object {
	unit := schema.Number(schema.Bounds(0, 1))

	return schema.Object{
		"type": &schema.Attr{Type: schema.Enumerated(domain.TraceType), Default: domain.TraceType},
		"mode": &schema.Attr{
			Type:        schema.Flaglist([]string{domain.ModeNumber, domain.ModeDelta, domain.ModeGauge}),
			Default:     domain.ModeNumber,
			Description: `Which parts are drawn, any "+" combination of number, delta and gauge.`,
		},
		"value": &schema.Attr{Type: schema.Number(),
			Description: "The number to display."},
		"align": &schema.Attr{Type: schema.Enumerated("left", "center", "right"),
			Description: "Horizontal alignment of number and delta. Not defaulted on angular gauges."},
		"domain": placement.Attributes(),

		"title": schema.Object{
			"text": &schema.Attr{Type: schema.String(),
				Description: "Title of the indicator."},
			"align": &schema.Attr{Type: schema.Enumerated("left", "center", "right"),
				Description: "Title alignment. Not defaulted on bullet gauges."},
			"font": fontAttributes("title"),
		},

		"number": schema.Object{
			"valueformat": &schema.Attr{Type: schema.String(), Default: "",
				Description: "d3-style format of the value."},
			"font":   fontAttributes("number"),
			"prefix": &schema.Attr{Type: schema.String(), Default: ""},
			"suffix": &schema.Attr{Type: schema.String(), Default: ""},
		},

		"delta": schema.Object{
			"reference": &schema.Attr{Type: schema.Number(),
				Description: "Value the delta is computed against; defaults to value."},
			"position": &schema.Attr{Type: schema.Enumerated("top", "bottom", "left", "right"), Default: "bottom"},
			"relative": &schema.Attr{Type: schema.Bool(), Default: false,
				Description: "Show the delta as a ratio of the reference."},
			"valueformat": &schema.Attr{Type: schema.String(),
				Description: `d3-style format of the delta; "2%" when relative.`},
			"increasing": schema.Object{
				"symbol": &schema.Attr{Type: schema.String(), Default: "▲"},
				"color":  &schema.Attr{Type: schema.Color(), Default: "#3D9970"},
			},
			"decreasing": schema.Object{
				"symbol": &schema.Attr{Type: schema.String(), Default: "▼"},
				"color":  &schema.Attr{Type: schema.Color(), Default: "#FF4136"},
			},
			"font": fontAttributes("delta"),
		},

		"gauge": schema.Object{
			"shape": &schema.Attr{Type: schema.Enumerated(domain.ShapeAngular, domain.ShapeBullet), Default: domain.ShapeAngular},
			"bar": schema.Object{
				"color": &schema.Attr{Type: schema.Color(), Default: "green"},
				"line":  lineAttributes("#444", 0),
				"thickness": &schema.Attr{Type: unit, Default: 1.0,
					Description: "Bar thickness as a fraction of the gauge; halved on bullet gauges."},
			},
			"bgcolor": &schema.Attr{Type: schema.Color(),
				Description: "Gauge background; defaults to the paper color."},
			"bordercolor": &schema.Attr{Type: schema.Color(), Default: "#444"},
			"borderwidth": &schema.Attr{Type: schema.Number(schema.Min(0)), Default: 1.0},
			"axis":        axis.GaugeAttributes(),
			"steps": &schema.Array{
				Description: "Colored ranges drawn behind the bar, in order.",
				Items: schema.Object{
					"color":     &schema.Attr{Type: schema.Color()},
					"line":      lineAttributes("#444", 0),
					"range":     &schema.Attr{Type: schema.InfoArray(schema.Number(), schema.Number())},
					"thickness": &schema.Attr{Type: unit, Default: 1.0},
				},
			},
			"threshold": schema.Object{
				"line":      lineAttributes("#444", 1),
				"thickness": &schema.Attr{Type: unit, Default: 0.85},
				"value": &schema.Attr{Type: schema.Number(),
					Description: "Where the threshold line is drawn. Not checked against the range."},
			},
		},
	}
}
