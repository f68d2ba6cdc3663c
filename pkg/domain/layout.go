package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Font is a resolved font triple.
type Font struct {
	Family string  `json:"family,omitempty" mapstructure:"family"`
	Size   float64 `json:"size,omitempty" mapstructure:"size"`
	Color  string  `json:"color,omitempty" mapstructure:"color"`
}

// Grid splits the paper into rows and columns that traces can be placed in
// through domain.row and domain.column.
type Grid struct {
	Rows    int `json:"rows" mapstructure:"rows"`
	Columns int `json:"columns" mapstructure:"columns"`
	// RowOrder is "top to bottom" (default) or "bottom to top".
	RowOrder string `json:"roworder,omitempty" mapstructure:"roworder"`
	// XGap and YGap are fractions of a cell left empty; nil means 0.1.
	XGap *float64 `json:"xgap,omitempty" mapstructure:"xgap"`
	YGap *float64 `json:"ygap,omitempty" mapstructure:"ygap"`
}

// Layout is the chart context a defaulting pass reads from. It is never
// written by the engine.
type Layout struct {
	Font         Font    `json:"font" mapstructure:"font"`
	PaperBgColor string  `json:"paper_bgcolor" mapstructure:"paper_bgcolor"`
	Width        float64 `json:"width,omitempty" mapstructure:"width"`
	Height       float64 `json:"height,omitempty" mapstructure:"height"`
	Grid         *Grid   `json:"grid,omitempty" mapstructure:"grid"`
	// Template holds per-trace-type defaults:
	// {"data": {"indicator": [ {...}, ... ]}}.
	Template map[string]any `json:"template,omitempty" mapstructure:"template"`
}

// DefaultLayout returns the layout used when a document does not provide one.
func DefaultLayout() Layout {
	return Layout{
		Font: Font{
			Family: `"Open Sans", verdana, arial, sans-serif`,
			Size:   12,
			Color:  "#444",
		},
		PaperBgColor: "#fff",
		Width:        700,
		Height:       450,
	}
}

// WithDefaults returns l with every zero font, color and size field taken
// from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if l.Font.Family == "" {
		l.Font.Family = d.Font.Family
	}
	if l.Font.Size <= 0 {
		l.Font.Size = d.Font.Size
	}
	if l.Font.Color == "" {
		l.Font.Color = d.Font.Color
	}
	if l.PaperBgColor == "" {
		l.PaperBgColor = d.PaperBgColor
	}
	if l.Width <= 0 {
		l.Width = d.Width
	}
	if l.Height <= 0 {
		l.Height = d.Height
	}
	return l
}

// DecodeLayout overlays raw onto DefaultLayout. Numbers given as strings are
// accepted.
func DecodeLayout(raw map[string]any) (Layout, error) {
	layout := DefaultLayout()
	if len(raw) == 0 {
		return layout, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &layout,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return layout, err
	}
	if err := decoder.Decode(raw); err != nil {
		return DefaultLayout(), fmt.Errorf("decode layout: %w", err)
	}
	return layout, nil
}

// TraceTemplate returns the template for the index-th indicator trace.
// Templates cycle when there are fewer templates than traces. Returns nil
// when the layout carries no indicator template.
func (l Layout) TraceTemplate(index int) map[string]any {
	data, ok := l.Template["data"].(map[string]any)
	if !ok {
		return nil
	}

	var list []any
	switch v := data[TraceType].(type) {
	case []any:
		list = v
	case []map[string]any:
		for _, m := range v {
			list = append(list, m)
		}
	}
	if len(list) == 0 || index < 0 {
		return nil
	}

	tmpl, _ := list[index%len(list)].(map[string]any)
	return tmpl
}
