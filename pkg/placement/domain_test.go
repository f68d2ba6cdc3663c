package placement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/placement"
	"github.com/aretw0/indicator/pkg/schema"
)

func binding(in map[string]any) *coerce.Binding {
	return &coerce.Binding{
		In:     in,
		Out:    map[string]any{},
		Schema: schema.Object{"domain": placement.Attributes()},
	}
}

func domainOut(b *coerce.Binding) map[string]any {
	return b.Out["domain"].(map[string]any)
}

func TestDefaults_NoGrid(t *testing.T) {
	tests := []struct {
		name  string
		in    map[string]any
		wantX []any
		wantY []any
	}{
		{name: "Empty", in: map[string]any{}, wantX: []any{0.0, 1.0}, wantY: []any{0.0, 1.0}},
		{
			name:  "Explicit",
			in:    map[string]any{"domain": map[string]any{"x": []any{0.2, 0.4}, "y": []any{0, 0.5}}},
			wantX: []any{0.2, 0.4},
			wantY: []any{0.0, 0.5},
		},
		{
			name:  "Reversed Reverts",
			in:    map[string]any{"domain": map[string]any{"x": []any{0.6, 0.3}}},
			wantX: []any{0.0, 1.0},
			wantY: []any{0.0, 1.0},
		},
		{
			name:  "Out Of Bounds Reverts",
			in:    map[string]any{"domain": map[string]any{"y": []any{0, 2}}},
			wantX: []any{0.0, 1.0},
			wantY: []any{0.0, 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := binding(tt.in)
			placement.Defaults(b, domain.DefaultLayout(), placement.FullPaper)

			out := domainOut(b)
			assert.Equal(t, tt.wantX, out["x"])
			assert.Equal(t, tt.wantY, out["y"])
			assert.NotContains(t, out, "row", "row is only resolved with a grid")
		})
	}
}

func TestDefaults_Grid(t *testing.T) {
	layout := domain.DefaultLayout()
	zero := 0.0
	layout.Grid = &domain.Grid{Rows: 2, Columns: 2, XGap: &zero, YGap: &zero}

	t.Run("Cell Provides Default", func(t *testing.T) {
		b := binding(map[string]any{"domain": map[string]any{"row": 0, "column": 1}})
		placement.Defaults(b, layout, placement.FullPaper)

		out := domainOut(b)
		assert.Equal(t, 1, out["column"])
		assert.Equal(t, 0, out["row"])
		assert.Equal(t, []any{0.5, 1.0}, out["x"])
		assert.Equal(t, []any{0.5, 1.0}, out["y"], "row 0 is the top row")
	})

	t.Run("Outside Grid Is Dropped", func(t *testing.T) {
		b := binding(map[string]any{"domain": map[string]any{"row": 5, "column": 3}})
		placement.Defaults(b, layout, placement.FullPaper)

		out := domainOut(b)
		assert.NotContains(t, out, "row")
		assert.NotContains(t, out, "column")
		assert.Equal(t, []any{0.0, 1.0}, out["x"])
	})

	t.Run("Explicit Domain Wins Over Cell", func(t *testing.T) {
		b := binding(map[string]any{"domain": map[string]any{"column": 1, "x": []any{0.1, 0.2}}})
		placement.Defaults(b, layout, placement.FullPaper)
		assert.Equal(t, []any{0.1, 0.2}, domainOut(b)["x"])
	})
}

func TestCells(t *testing.T) {
	cells := placement.Cells(2, 0.1, false)
	require.Len(t, cells, 2)
	assert.InDelta(t, 0.0, cells[0][0], 1e-9)
	assert.InDelta(t, 1.0, cells[1][1], 1e-9)
	assert.Less(t, cells[0][1], cells[1][0], "cells are separated by the gap")

	reversed := placement.Cells(3, 0, true)
	assert.InDelta(t, 1.0, reversed[0][1], 1e-9)
	assert.InDelta(t, 0.0, reversed[2][0], 1e-9)

	assert.Nil(t, placement.Cells(0, 0.1, false))
}
