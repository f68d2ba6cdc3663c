package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/schema"
)

func fontSchema() schema.Object {
	return schema.Object{
		"shape": &schema.Attr{Type: schema.Enumerated("angular", "bullet"), Default: "angular"},
		"value": &schema.Attr{Type: schema.Number()},
		"range": &schema.Attr{Type: schema.InfoArray(schema.Number(), schema.Number()), Default: []any{0.0, 1.0}},
		"font": schema.Object{
			"size":  &schema.Attr{Type: schema.Number(schema.Min(1))},
			"color": &schema.Attr{Type: schema.Color(), Default: "#444"},
		},
	}
}

func TestBinding_Coerce(t *testing.T) {
	t.Run("Valid Input Wins", func(t *testing.T) {
		in := map[string]any{"shape": "bullet", "font": map[string]any{"size": "20"}}
		out := map[string]any{}
		b := &coerce.Binding{In: in, Out: out, Schema: fontSchema()}

		assert.Equal(t, "bullet", b.Coerce("shape"))
		assert.Equal(t, 20.0, b.Coerce("font.size"))
		assert.Equal(t, 20.0, out["font"].(map[string]any)["size"])
	})

	t.Run("Invalid Input Falls Back To Schema Default", func(t *testing.T) {
		out := map[string]any{}
		b := &coerce.Binding{In: map[string]any{"shape": "round"}, Out: out, Schema: fontSchema()}

		assert.Equal(t, "angular", b.Coerce("shape"))
		assert.Equal(t, "angular", out["shape"])
	})

	t.Run("Explicit Default Overrides Schema Default", func(t *testing.T) {
		out := map[string]any{}
		b := &coerce.Binding{In: map[string]any{}, Out: out, Schema: fontSchema()}

		assert.Equal(t, "#fff", b.Coerce("font.color", "#fff"))
		assert.Equal(t, 42.0, b.Coerce("value", 42.0))
	})

	t.Run("Absent Without Default Leaves No Key", func(t *testing.T) {
		out := map[string]any{"value": 3.0}
		b := &coerce.Binding{In: map[string]any{"value": "nan"}, Out: out, Schema: fontSchema()}

		assert.Nil(t, b.Coerce("value"))
		assert.NotContains(t, out, "value")
	})

	t.Run("Explicit Nil Default Suppresses Schema Default", func(t *testing.T) {
		out := map[string]any{}
		b := &coerce.Binding{In: map[string]any{}, Out: out, Schema: fontSchema()}

		assert.Nil(t, b.Coerce("font.color", nil))
		assert.Empty(t, out["font"])
	})

	t.Run("Unknown Attribute Is A No-op", func(t *testing.T) {
		out := map[string]any{}
		b := &coerce.Binding{In: map[string]any{"nope": 1}, Out: out, Schema: fontSchema()}

		assert.Nil(t, b.Coerce("nope"))
		assert.Empty(t, out)
	})

	t.Run("Defaults Are Copied", func(t *testing.T) {
		s := fontSchema()
		first := map[string]any{}
		(&coerce.Binding{In: map[string]any{}, Out: first, Schema: s}).Coerce("range")
		first["range"].([]any)[0] = 99.0

		second := map[string]any{}
		(&coerce.Binding{In: map[string]any{}, Out: second, Schema: s}).Coerce("range")
		assert.Equal(t, []any{0.0, 1.0}, second["range"])
	})

	t.Run("Input Is Never Mutated", func(t *testing.T) {
		in := map[string]any{"range": []any{5, "x"}, "font": "oops"}
		out := map[string]any{}
		b := &coerce.Binding{In: in, Out: out, Schema: fontSchema()}

		b.Coerce("range")
		b.Coerce("font.size")
		assert.Equal(t, []any{5, "x"}, in["range"])
		assert.Equal(t, "oops", in["font"])
	})
}

func TestBinding_Template(t *testing.T) {
	tmpl := map[string]any{"shape": "bullet", "font": map[string]any{"color": "red"}}

	t.Run("Template Beats Static Default", func(t *testing.T) {
		b := &coerce.Binding{In: map[string]any{}, Out: map[string]any{}, Schema: fontSchema(), Template: tmpl}
		assert.Equal(t, "bullet", b.Coerce("shape"))
		assert.Equal(t, "red", b.Coerce("font.color"))
	})

	t.Run("Template Replaces Invalid Input", func(t *testing.T) {
		rec := &coerce.Recorder{}
		b := &coerce.Binding{In: map[string]any{"shape": 3}, Out: map[string]any{}, Schema: fontSchema(), Template: tmpl, Observer: rec}
		assert.Equal(t, "bullet", b.Coerce("shape"))
		require.Len(t, rec.Events, 1)
		assert.Equal(t, coerce.ReasonInvalid, rec.Events[0].Reason)
	})

	t.Run("Valid Input Beats Template", func(t *testing.T) {
		b := &coerce.Binding{In: map[string]any{"shape": "angular"}, Out: map[string]any{}, Schema: fontSchema(), Template: tmpl}
		assert.Equal(t, "angular", b.Coerce("shape"))
	})
}

func TestBinding_Events(t *testing.T) {
	rec := &coerce.Recorder{}
	b := &coerce.Binding{
		In:       map[string]any{"shape": "bullet", "value": "x"},
		Out:      map[string]any{},
		Schema:   fontSchema(),
		Prefix:   "gauge",
		Observer: rec,
	}

	b.Coerce("shape")
	b.Coerce("value")
	b.Coerce("font.color")
	b.Coerce("font.size")
	b.Coerce("missing")

	require.Len(t, rec.Events, 5)
	assert.Equal(t, coerce.Event{Path: "gauge.shape", Input: "bullet", Output: "bullet", Reason: coerce.ReasonExplicit}, rec.Events[0])
	assert.Equal(t, coerce.ReasonInvalid, rec.Events[1].Reason)
	assert.Equal(t, "x", rec.Events[1].Input)
	assert.Equal(t, coerce.ReasonDefault, rec.Events[2].Reason)
	assert.Equal(t, coerce.ReasonAbsent, rec.Events[3].Reason)
	assert.Equal(t, "gauge.missing", rec.Events[4].Path)
	assert.Equal(t, coerce.ReasonUnknown, rec.Events[4].Reason)
	assert.Len(t, rec.Filter(coerce.ReasonInvalid), 1)
}

func TestBinding_Child(t *testing.T) {
	s := schema.Object{
		"gauge": schema.Object{
			"shape": &schema.Attr{Type: schema.Enumerated("angular", "bullet"), Default: "angular"},
		},
	}
	rec := &coerce.Recorder{}
	out := map[string]any{}
	parent := &coerce.Binding{In: map[string]any{"gauge": "garbage"}, Out: out, Schema: s, Observer: rec}

	child := parent.Child("gauge")
	assert.Equal(t, "angular", child.Coerce("shape"))
	assert.Equal(t, map[string]any{"shape": "angular"}, out["gauge"])
	assert.Equal(t, "gauge.shape", rec.Events[0].Path)

	again := parent.Child("gauge")
	again.Set("shape", "bullet")
	assert.Equal(t, "bullet", child.Out["shape"], "Child reuses an existing output container")
}

func TestBinding_Explicit(t *testing.T) {
	b := &coerce.Binding{In: map[string]any{"value": 1, "shape": "round"}, Out: map[string]any{}, Schema: fontSchema()}
	assert.True(t, b.Explicit("value"))
	assert.False(t, b.Explicit("shape"))
	assert.False(t, b.Explicit("font.size"))
	assert.Empty(t, b.Out)
}
