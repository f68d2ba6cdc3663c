package coerce

import (
	"github.com/aretw0/indicator/pkg/schema"
)

// Coercer resolves one attribute and returns the written value.
type Coercer interface {
	Coerce(path string, dflt ...any) any
}

// Binding ties an input tree, an output tree and the schema describing
// both. Coerce reads from In, writes to Out and never mutates In.
type Binding struct {
	In       map[string]any
	Out      map[string]any
	Schema   schema.Object
	Template map[string]any
	// Prefix is prepended to paths reported to the Observer ("gauge", "gauge.steps[2]").
	Prefix   string
	Observer Observer
}

var _ Coercer = (*Binding)(nil)

// Coerce resolves the attribute at path.
//
// The input value wins when it validates; otherwise the template value,
// then dflt (when given, even if nil) or the schema default. The result is
// written to Out and returned. An absent result removes the key from Out
// and returns nil.
func (b *Binding) Coerce(path string, dflt ...any) any {
	attr, ok := b.Schema.Attr(path)
	if !ok {
		b.emit(Event{Path: path, Reason: ReasonUnknown})
		return nil
	}

	fallback := attr.Default
	if len(dflt) > 0 {
		fallback = dflt[0]
	}

	raw, present := Get(b.In, path)
	tmpl, hasTemplate := Get(b.Template, path)

	if present {
		if v, err := attr.Type.Coerce(raw); err == nil {
			return b.write(path, v, Event{Path: path, Input: raw, Reason: ReasonExplicit})
		}
		// An invalid input still lets the template override the default.
		if hasTemplate {
			if v, err := attr.Type.Coerce(tmpl); err == nil {
				return b.write(path, v, Event{Path: path, Input: raw, Reason: ReasonInvalid})
			}
		}
		return b.write(path, schema.Clone(fallback), Event{Path: path, Input: raw, Reason: ReasonInvalid})
	}

	if hasTemplate {
		if v, err := attr.Type.Coerce(tmpl); err == nil {
			return b.write(path, v, Event{Path: path, Reason: ReasonTemplate})
		}
	}
	return b.write(path, schema.Clone(fallback), Event{Path: path, Reason: ReasonDefault})
}

// Explicit reports whether the input carries a valid value for path,
// without writing anything.
func (b *Binding) Explicit(path string) bool {
	attr, ok := b.Schema.Attr(path)
	if !ok {
		return false
	}
	raw, present := Get(b.In, path)
	return present && attr.Type.Validate(raw) == nil
}

// Child returns a binding over the named sub-container. A missing or
// malformed input container is treated as empty; the output container is
// created when absent.
func (b *Binding) Child(name string) *Binding {
	out, ok := b.Out[name].(map[string]any)
	if !ok {
		out = make(map[string]any)
		b.Out[name] = out
	}
	return &Binding{
		In:       NestedMap(b.In, name),
		Out:      out,
		Schema:   b.Schema.Object(name),
		Template: NestedMap(b.Template, name),
		Prefix:   join(b.Prefix, name),
		Observer: b.Observer,
	}
}

// Set writes a computed value that did not come from coercion.
func (b *Binding) Set(path string, value any) {
	Set(b.Out, path, value)
}

func (b *Binding) write(path string, value any, ev Event) any {
	if value == nil {
		Delete(b.Out, path)
		if ev.Reason == ReasonDefault {
			ev.Reason = ReasonAbsent
		}
	} else {
		Set(b.Out, path, value)
	}
	ev.Output = value
	b.emit(ev)
	return value
}

func (b *Binding) emit(ev Event) {
	if b.Observer == nil {
		return
	}
	ev.Path = join(b.Prefix, ev.Path)
	b.Observer.Observe(ev)
}
