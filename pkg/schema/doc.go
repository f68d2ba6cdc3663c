// Package schema describes configurable attributes and how their values are
// validated and normalized.
//
// A schema is a tree of nodes: *Attr leaves carry a Type and an optional
// static default, Object nests attributes, and *Array declares a list of
// objects sharing an items schema.
//
// Basic usage:
//
//	font := schema.Object{
//	    "family": &schema.Attr{Type: schema.String(schema.StringOptions{NoBlank: true, Strict: true})},
//	    "size":   &schema.Attr{Type: schema.Number(schema.Min(1))},
//	    "color":  &schema.Attr{Type: schema.Color()},
//	}
//
//	attrs := schema.Object{
//	    "mode":  &schema.Attr{Type: schema.Flaglist([]string{"number", "delta", "gauge"}), Default: "number"},
//	    "value": &schema.Attr{Type: schema.Number()},
//	    "font":  font,
//	}
//
//	if err := schema.Validate(attrs, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // Handle each attribute that would fall back to its default
//	    }
//	}
//
// Every Type both validates and normalizes: Coerce returns the value that
// should be written to a resolved tree (numbers as float64, integers as
// int, lists copied). Schemas are read-only values; nothing in this package
// mutates a schema after construction.
package schema
