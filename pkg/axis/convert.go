package axis

import (
	"math"

	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/schema"
)

// Horizontal margins subtracted from the layout width to get the plot area.
const plotMargin = 80.0

// Converter prepares an axis for coordinate conversion before its ticks
// are defaulted.
type Converter interface {
	// SetConvert writes the linear data-to-pixel scale (_m, _b, _length).
	SetConvert(out map[string]any, layout domain.Layout)
	// PrepTicks fills in automatic tick spacing and _tickround.
	PrepTicks(out map[string]any)
}

// Linear is the Converter for linear axes.
type Linear struct{}

var _ Converter = Linear{}

func (Linear) SetConvert(out map[string]any, layout domain.Layout) {
	width := layout.Width
	if width <= 0 {
		width = domain.DefaultLayout().Width
	}
	length := math.Max(width-2*plotMargin, 1)

	lo, hi := bounds(out)
	m := 1.0
	if hi != lo {
		m = length / (hi - lo)
	}
	out["_length"] = length
	out["_m"] = m
	out["_b"] = -m * lo
}

func (Linear) PrepTicks(out map[string]any) {
	lo, hi := bounds(out)
	dtick, _ := schema.ToFloat(out["dtick"])

	if out["tickmode"] == "auto" || dtick <= 0 {
		nticks, _ := schema.ToFloat(out["nticks"])
		dtick = AutoDTick(hi-lo, int(nticks), lengthOf(out))
		out["tick0"] = 0.0
		out["dtick"] = dtick
	}

	out["_tickround"] = TickRound(dtick)

	minexp := 3.0
	if v, ok := schema.ToFloat(out["minexponent"]); ok {
		minexp = v
	}
	if maxEnd := math.Max(math.Abs(lo), math.Abs(hi)); maxEnd > 0 {
		exp := math.Floor(math.Log10(maxEnd) + 0.01)
		if math.Abs(exp) > minexp {
			out["_tickexponent"] = int(exp)
		}
	}
}

// AutoDTick picks a 1-2-5 tick step for a span. With nticks <= 0 the count
// comes from the axis length, one tick per 80px clamped to [4, 9].
func AutoDTick(span float64, nticks int, length float64) float64 {
	span = math.Abs(span)
	if span == 0 {
		return 1
	}

	nt := float64(nticks)
	if nt <= 0 {
		nt = math.Min(math.Max(length/80, 4), 9) + 1
	}

	rough := span / nt
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	ratio := rough / base
	switch {
	case ratio > 5:
		return 10 * base
	case ratio > 2:
		return 5 * base
	case ratio > 1:
		return 2 * base
	default:
		return base
	}
}

// TickRound is the number of decimals needed to print multiples of dtick.
func TickRound(dtick float64) int {
	if dtick <= 0 || math.IsNaN(dtick) || math.IsInf(dtick, 0) {
		return 0
	}
	for digits := 0; digits < 15; digits++ {
		scaled := dtick * math.Pow(10, float64(digits))
		if math.Abs(scaled-math.Round(scaled)) < 1e-9*math.Max(1, scaled) {
			return digits
		}
	}
	return 15
}

func bounds(out map[string]any) (float64, float64) {
	list, _ := schema.ToList(out["range"])
	if len(list) != 2 {
		return 0, 1
	}
	lo, _ := schema.ToFloat(list[0])
	hi, _ := schema.ToFloat(list[1])
	return lo, hi
}

func lengthOf(out map[string]any) float64 {
	v, _ := schema.ToFloat(out["_length"])
	return v
}
