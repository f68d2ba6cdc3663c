package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/container"
	"github.com/aretw0/indicator/pkg/schema"
)

func itemSchema() schema.Object {
	return schema.Object{
		"enabled":   &schema.Attr{Type: schema.Bool(), Default: true},
		"color":     &schema.Attr{Type: schema.Color()},
		"range":     &schema.Attr{Type: schema.InfoArray(schema.Number(), schema.Number())},
		"thickness": &schema.Attr{Type: schema.Number(schema.Bounds(0, 1)), Default: 1.0},
	}
}

func resolveAll(item *container.Item) {
	item.Coerce("color")
	item.Coerce("range")
	item.Coerce("thickness")
}

func TestResolve_PreservesOrder(t *testing.T) {
	in := map[string]any{"steps": []any{
		map[string]any{"range": []any{0, 1}},
		map[string]any{"range": []any{1, 2}},
		map[string]any{"range": []any{2, 3}},
	}}
	out := map[string]any{}

	got := container.Resolve(in, out, container.Options{Name: "steps", Items: itemSchema(), Handle: resolveAll})

	require.Len(t, got, 3)
	for i, item := range got {
		assert.Equal(t, []any{float64(i), float64(i + 1)}, item["range"])
		assert.Equal(t, i, item["_index"])
		assert.Equal(t, 1.0, item["thickness"])
	}
	assert.Len(t, out["steps"], 3)
}

func TestResolve_MissingOrMalformedList(t *testing.T) {
	for name, in := range map[string]map[string]any{
		"absent":   {},
		"nil":      {"steps": nil},
		"scalar":   {"steps": 5},
		"object":   {"steps": map[string]any{"color": "red"}},
		"nilInput": nil,
	} {
		t.Run(name, func(t *testing.T) {
			out := map[string]any{}
			got := container.Resolve(in, out, container.Options{Name: "steps", Items: itemSchema(), Handle: resolveAll})
			assert.Empty(t, got)
			assert.Equal(t, []any{}, out["steps"])
		})
	}
}

func TestResolve_DropsNonObjectsAndRejected(t *testing.T) {
	in := map[string]any{"stops": []any{
		map[string]any{"enabled": false},
		"junk",
		map[string]any{"color": "blue"},
	}}
	out := map[string]any{}

	got := container.Resolve(in, out, container.Options{
		Name:  "stops",
		Items: itemSchema(),
		Handle: func(item *container.Item) {
			if item.Coerce("enabled") != true {
				item.Reject()
				return
			}
			item.Coerce("color")
		},
	})

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0]["_index"])
	assert.Equal(t, "blue", got[0]["color"])
}

func TestResolve_TemplateAndEvents(t *testing.T) {
	rec := &coerce.Recorder{}
	in := map[string]any{"steps": []any{map[string]any{"color": 12}}}
	out := map[string]any{}

	got := container.Resolve(in, out, container.Options{
		Name:     "steps",
		Items:    itemSchema(),
		Handle:   resolveAll,
		Template: map[string]any{"stepdefaults": map[string]any{"color": "gold", "thickness": 0.5}},
		Prefix:   "gauge",
		Observer: rec,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "gold", got[0]["color"])
	assert.Equal(t, 0.5, got[0]["thickness"])

	invalid := rec.Filter(coerce.ReasonInvalid)
	require.Len(t, invalid, 1)
	assert.Equal(t, "gauge.steps[0].color", invalid[0].Path)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	step := map[string]any{"range": []any{0, 1}}
	in := map[string]any{"steps": []any{step}}
	out := map[string]any{}

	got := container.Resolve(in, out, container.Options{Name: "steps", Items: itemSchema(), Handle: resolveAll})
	got[0]["range"].([]any)[0] = 42.0

	assert.Equal(t, map[string]any{"range": []any{0, 1}}, step)
}

func TestItemDefaultsKey(t *testing.T) {
	assert.Equal(t, "stepdefaults", container.ItemDefaultsKey("steps"))
	assert.Equal(t, "tickformatstopdefaults", container.ItemDefaultsKey("tickformatstops"))
}
