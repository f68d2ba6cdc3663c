// Package placement resolves where a trace sits on the paper: its x and y
// domain, optionally derived from a layout grid cell.
package placement

import (
	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/schema"
)

// DefaultGap is the fraction of a grid cell left empty between cells.
const DefaultGap = 0.1

// Domain is a pair of [lo, hi] paper fractions.
type Domain struct {
	X [2]float64
	Y [2]float64
}

// FullPaper covers the whole plotting area.
var FullPaper = Domain{X: [2]float64{0, 1}, Y: [2]float64{0, 1}}

// Attributes returns the schema of a "domain" container.
func Attributes() schema.Object {
	fraction := schema.Number(schema.Bounds(0, 1))
	return schema.Object{
		"x": &schema.Attr{Type: schema.InfoArray(fraction, fraction), Default: []any{0.0, 1.0},
			Description: "Horizontal paper fraction [lo, hi] the trace occupies."},
		"y": &schema.Attr{Type: schema.InfoArray(fraction, fraction), Default: []any{0.0, 1.0},
			Description: "Vertical paper fraction [lo, hi] the trace occupies."},
		"row": &schema.Attr{Type: schema.Integer(schema.Min(0)), Default: 0,
			Description: "Grid row, when the layout has a grid."},
		"column": &schema.Attr{Type: schema.Integer(schema.Min(0)), Default: 0,
			Description: "Grid column, when the layout has a grid."},
	}
}

// Defaults resolves domain.* on a trace binding. With a layout grid, the
// row and column pick the default x and y; a row or column outside the
// grid is dropped. A domain whose lo is not below hi reverts to its default.
func Defaults(b *coerce.Binding, layout domain.Layout, dflt Domain) {
	if grid := layout.Grid; grid != nil {
		if column, ok := b.Coerce("domain.column").(int); ok {
			if cells := Cells(grid.Columns, gap(grid.XGap), false); column < len(cells) {
				dflt.X = cells[column]
			} else {
				coerce.Delete(b.Out, "domain.column")
			}
		}
		if row, ok := b.Coerce("domain.row").(int); ok {
			bottomUp := grid.RowOrder == "bottom to top"
			if cells := Cells(grid.Rows, gap(grid.YGap), !bottomUp); row < len(cells) {
				dflt.Y = cells[row]
			} else {
				coerce.Delete(b.Out, "domain.row")
			}
		}
	}

	resolve(b, "domain.x", dflt.X)
	resolve(b, "domain.y", dflt.Y)
}

func resolve(b *coerce.Binding, path string, dflt [2]float64) {
	fallback := []any{dflt[0], dflt[1]}
	v, _ := b.Coerce(path, fallback).([]any)
	if len(v) != 2 {
		b.Set(path, []any{dflt[0], dflt[1]})
		return
	}
	lo, _ := schema.ToFloat(v[0])
	hi, _ := schema.ToFloat(v[1])
	if !(lo < hi) {
		b.Set(path, []any{dflt[0], dflt[1]})
	}
}

// Cells splits [0, 1] into n cells separated by gap (a fraction of one
// cell). Reversed cells run from 1 down to 0, so cell 0 is the top row.
func Cells(n int, gap float64, reversed bool) [][2]float64 {
	if n <= 0 {
		return nil
	}
	step := 1 / (float64(n) - gap)
	size := step * (1 - gap)

	cells := make([][2]float64, n)
	for i := range cells {
		lo := step * float64(i)
		cells[i] = [2]float64{lo, lo + size}
	}
	if reversed {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
	}
	return cells
}

func gap(v *float64) float64 {
	if v == nil || *v < 0 || *v >= 1 {
		return DefaultGap
	}
	return *v
}
