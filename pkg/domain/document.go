package domain

import "fmt"

// Document is a layout plus the indicator traces placed on it, as read
// from a file, a workspace entry or a request body.
type Document struct {
	ID     string           `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Layout map[string]any   `json:"layout,omitempty" yaml:"layout,omitempty" mapstructure:"layout"`
	Traces []map[string]any `json:"traces" yaml:"traces" mapstructure:"traces"`
}

// DecodeDocument converts a generic tree ({layout, traces} or a single
// bare trace) into a Document.
func DecodeDocument(raw map[string]any) (*Document, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}
	raw = Normalize(raw).(map[string]any)

	// A bare trace has no traces key.
	if _, ok := raw["traces"]; !ok {
		layout, _ := raw["layout"].(map[string]any)
		trace := make(map[string]any, len(raw))
		for k, v := range raw {
			if k != "layout" && k != "id" {
				trace[k] = v
			}
		}
		if len(trace) == 0 {
			return nil, ErrEmptyDocument
		}
		id, _ := raw["id"].(string)
		return &Document{ID: id, Layout: layout, Traces: []map[string]any{trace}}, nil
	}

	var doc Document
	if err := decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if len(doc.Traces) == 0 {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// ResolvedLayout decodes the document layout over DefaultLayout.
func (d *Document) ResolvedLayout() (Layout, error) {
	return DecodeLayout(d.Layout)
}

// Trace returns the i-th raw trace.
func (d *Document) Trace(i int) (map[string]any, error) {
	if i < 0 || i >= len(d.Traces) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrTraceNotFound, i, len(d.Traces))
	}
	return d.Traces[i], nil
}

// Normalize converts the map[any]any nodes some YAML decoders produce into
// map[string]any, recursively. Other values are returned unchanged.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	}
	return v
}
