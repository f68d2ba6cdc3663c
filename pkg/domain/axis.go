package domain

import "fmt"

// TickFormatStop applies a tick format within a dtick range.
type TickFormatStop struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	DTickRange []any  `json:"dtickrange,omitempty" mapstructure:"dtickrange"`
	Value      string `json:"value" mapstructure:"value"`
	Name       string `json:"name,omitempty" mapstructure:"name"`
	Index      int    `json:"-" mapstructure:"_index"`
}

// Axis is a resolved linear axis. All three axes of an indicator share
// Range; everything else is resolved per axis.
type Axis struct {
	ID      string    `json:"-" mapstructure:"_id"`
	Type    string    `json:"type,omitempty" mapstructure:"type"`
	Range   []float64 `json:"range" mapstructure:"range"`
	Visible bool      `json:"visible" mapstructure:"visible"`

	// Linear data-to-pixel conversion: px = M*v + B over Length pixels.
	M            float64 `json:"-" mapstructure:"_m"`
	B            float64 `json:"-" mapstructure:"_b"`
	Length       float64 `json:"-" mapstructure:"_length"`
	TickRound    int     `json:"-" mapstructure:"_tickround"`
	TickExponent int     `json:"-" mapstructure:"_tickexponent"`

	TickMode string  `json:"tickmode,omitempty" mapstructure:"tickmode"`
	NTicks   int     `json:"nticks,omitempty" mapstructure:"nticks"`
	Tick0    float64 `json:"tick0,omitempty" mapstructure:"tick0"`
	DTick    float64 `json:"dtick,omitempty" mapstructure:"dtick"`
	TickVals []any   `json:"tickvals,omitempty" mapstructure:"tickvals"`
	TickText []any   `json:"ticktext,omitempty" mapstructure:"ticktext"`

	Ticks     string  `json:"ticks,omitempty" mapstructure:"ticks"`
	TickLen   float64 `json:"ticklen,omitempty" mapstructure:"ticklen"`
	TickWidth float64 `json:"tickwidth,omitempty" mapstructure:"tickwidth"`
	TickColor string  `json:"tickcolor,omitempty" mapstructure:"tickcolor"`

	ShowTickLabels    bool             `json:"showticklabels" mapstructure:"showticklabels"`
	TickFont          *Font            `json:"tickfont,omitempty" mapstructure:"tickfont"`
	TickAngle         any              `json:"tickangle,omitempty" mapstructure:"tickangle"`
	TickFormat        string           `json:"tickformat,omitempty" mapstructure:"tickformat"`
	TickFormatStops   []TickFormatStop `json:"tickformatstops,omitempty" mapstructure:"tickformatstops"`
	TickPrefix        string           `json:"tickprefix,omitempty" mapstructure:"tickprefix"`
	ShowTickPrefix    string           `json:"showtickprefix,omitempty" mapstructure:"showtickprefix"`
	TickSuffix        string           `json:"ticksuffix,omitempty" mapstructure:"ticksuffix"`
	ShowTickSuffix    string           `json:"showticksuffix,omitempty" mapstructure:"showticksuffix"`
	SeparateThousands bool             `json:"separatethousands,omitempty" mapstructure:"separatethousands"`
	ExponentFormat    string           `json:"exponentformat,omitempty" mapstructure:"exponentformat"`
	MinExponent       float64          `json:"minexponent,omitempty" mapstructure:"minexponent"`
	ShowExponent      string           `json:"showexponent,omitempty" mapstructure:"showexponent"`
	TickLabelStep     int              `json:"ticklabelstep,omitempty" mapstructure:"ticklabelstep"`

	Color     string  `json:"color,omitempty" mapstructure:"color"`
	ShowLine  bool    `json:"showline,omitempty" mapstructure:"showline"`
	LineColor string  `json:"linecolor,omitempty" mapstructure:"linecolor"`
	LineWidth float64 `json:"linewidth,omitempty" mapstructure:"linewidth"`
	ShowGrid  bool    `json:"showgrid,omitempty" mapstructure:"showgrid"`
	GridColor string  `json:"gridcolor,omitempty" mapstructure:"gridcolor"`
	GridWidth float64 `json:"gridwidth,omitempty" mapstructure:"gridwidth"`

	Side     string    `json:"side,omitempty" mapstructure:"side"`
	Anchor   string    `json:"anchor,omitempty" mapstructure:"anchor"`
	Position float64   `json:"position,omitempty" mapstructure:"position"`
	Domain   []float64 `json:"domain,omitempty" mapstructure:"domain"`
}

// DecodeAxis builds the typed view of a resolved axis tree.
func DecodeAxis(out map[string]any) (Axis, error) {
	var axis Axis
	if err := decode(out, &axis); err != nil {
		return Axis{}, fmt.Errorf("decode axis: %w", err)
	}
	return axis, nil
}
