package defaults

import (
	"strings"

	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/schema"
)

// Flags are the parts of an indicator a mode turns on.
type Flags struct {
	Number bool
	Delta  bool
	Gauge  bool
}

// ParseMode reads a resolved "+"-joined mode.
func ParseMode(mode string) Flags {
	var f Flags
	for _, part := range strings.Split(mode, "+") {
		switch part {
		case domain.ModeNumber:
			f.Number = true
		case domain.ModeDelta:
			f.Delta = true
		case domain.ModeGauge:
			f.Gauge = true
		}
	}
	return f
}

// SharedRange derives the [lo, hi] scale from a caller-supplied gauge axis
// range. Each bound that is not a number falls back to the matching bound of
// the template range, then to 0 for lo and 1.5*value for hi. A raw or tmpl
// that is not a pair contributes no bounds. Neither argument is written.
func SharedRange(raw, tmpl any, value float64) [2]float64 {
	return pairBounds(raw, pairBounds(tmpl, [2]float64{0, domain.RangeFactor * value}))
}

func pairBounds(raw any, dflt [2]float64) [2]float64 {
	rng := dflt
	list, ok := schema.ToList(raw)
	if !ok || len(list) != 2 {
		return rng
	}
	if lo, ok := schema.ToFloat(list[0]); ok {
		rng[0] = lo
	}
	if hi, ok := schema.ToFloat(list[1]); ok {
		rng[1] = hi
	}
	return rng
}
