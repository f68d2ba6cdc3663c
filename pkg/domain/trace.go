package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Trace is the typed view of a resolved indicator. Sub-blocks that the
// mode does not activate are nil.
type Trace struct {
	Type   string   `json:"type" mapstructure:"type"`
	Mode   string   `json:"mode" mapstructure:"mode"`
	Value  *float64 `json:"value,omitempty" mapstructure:"value"`
	Align  string   `json:"align,omitempty" mapstructure:"align"`
	Domain Domain   `json:"domain" mapstructure:"domain"`
	Title  Title    `json:"title" mapstructure:"title"`
	Number *Number  `json:"number,omitempty" mapstructure:"number"`
	Delta  *Delta   `json:"delta,omitempty" mapstructure:"delta"`
	Gauge  *Gauge   `json:"gauge,omitempty" mapstructure:"gauge"`

	HasNumber    bool `json:"-" mapstructure:"_hasNumber"`
	HasDelta     bool `json:"-" mapstructure:"_hasDelta"`
	HasGauge     bool `json:"-" mapstructure:"_hasGauge"`
	IsBullet     bool `json:"-" mapstructure:"_isBullet"`
	IsAngular    bool `json:"-" mapstructure:"_isAngular"`
	ScaleNumbers bool `json:"-" mapstructure:"_scaleNumbers"`
}

// Domain is the fraction of the paper a trace occupies.
type Domain struct {
	X      []float64 `json:"x" mapstructure:"x"`
	Y      []float64 `json:"y" mapstructure:"y"`
	Row    *int      `json:"row,omitempty" mapstructure:"row"`
	Column *int      `json:"column,omitempty" mapstructure:"column"`
}

// Title is the label drawn above the indicator.
type Title struct {
	Text  string `json:"text,omitempty" mapstructure:"text"`
	Align string `json:"align,omitempty" mapstructure:"align"`
	Font  Font   `json:"font" mapstructure:"font"`
}

// Number is the main value display.
type Number struct {
	ValueFormat string `json:"valueformat" mapstructure:"valueformat"`
	Font        Font   `json:"font" mapstructure:"font"`
	Prefix      string `json:"prefix" mapstructure:"prefix"`
	Suffix      string `json:"suffix" mapstructure:"suffix"`
	Axis        *Axis  `json:"-" mapstructure:"_axis"`
}

// DeltaDirection styles increases or decreases against the reference.
type DeltaDirection struct {
	Symbol string `json:"symbol" mapstructure:"symbol"`
	Color  string `json:"color" mapstructure:"color"`
}

// Delta is the difference between value and reference.
type Delta struct {
	Reference   *float64       `json:"reference,omitempty" mapstructure:"reference"`
	Position    string         `json:"position" mapstructure:"position"`
	Relative    bool           `json:"relative" mapstructure:"relative"`
	ValueFormat string         `json:"valueformat" mapstructure:"valueformat"`
	Increasing  DeltaDirection `json:"increasing" mapstructure:"increasing"`
	Decreasing  DeltaDirection `json:"decreasing" mapstructure:"decreasing"`
	Font        Font           `json:"font" mapstructure:"font"`
	Axis        *Axis          `json:"-" mapstructure:"_axis"`
}

// Line is a stroke.
type Line struct {
	Color string  `json:"color" mapstructure:"color"`
	Width float64 `json:"width" mapstructure:"width"`
}

// Bar is the gauge value bar.
type Bar struct {
	Color     string  `json:"color" mapstructure:"color"`
	Line      Line    `json:"line" mapstructure:"line"`
	Thickness float64 `json:"thickness" mapstructure:"thickness"`
}

// Step is one colored segment of the gauge background.
type Step struct {
	Index     int       `json:"-" mapstructure:"_index"`
	Color     string    `json:"color,omitempty" mapstructure:"color"`
	Line      Line      `json:"line" mapstructure:"line"`
	Range     []float64 `json:"range,omitempty" mapstructure:"range"`
	Thickness float64   `json:"thickness" mapstructure:"thickness"`
}

// Threshold is a marker line drawn across the gauge.
type Threshold struct {
	Value     *float64 `json:"value,omitempty" mapstructure:"value"`
	Thickness float64  `json:"thickness" mapstructure:"thickness"`
	Line      Line     `json:"line" mapstructure:"line"`
}

// Gauge is the angular or bullet gauge block.
type Gauge struct {
	Shape       string    `json:"shape" mapstructure:"shape"`
	BgColor     string    `json:"bgcolor,omitempty" mapstructure:"bgcolor"`
	BorderColor string    `json:"bordercolor" mapstructure:"bordercolor"`
	BorderWidth float64   `json:"borderwidth" mapstructure:"borderwidth"`
	Bar         Bar       `json:"bar" mapstructure:"bar"`
	Steps       []Step    `json:"steps" mapstructure:"steps"`
	Threshold   Threshold `json:"threshold" mapstructure:"threshold"`
	// Axis is the public projection, InternalAxis the full descriptor.
	Axis         *Axis `json:"axis,omitempty" mapstructure:"axis"`
	InternalAxis *Axis `json:"-" mapstructure:"_axis"`
}

// DecodeTrace builds the typed view of a resolved trace tree.
func DecodeTrace(out map[string]any) (Trace, error) {
	var trace Trace
	if err := decode(out, &trace); err != nil {
		return Trace{}, fmt.Errorf("decode trace: %w", err)
	}
	return trace, nil
}

func decode(input any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
