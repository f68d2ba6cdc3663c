package schema

import (
	"sort"
	"strconv"
	"strings"
)

// Node is one entry of an attribute schema: an *Attr leaf, a nested
// Object, or an *Array of objects.
type Node interface {
	node()
}

// Attr declares a leaf attribute.
type Attr struct {
	Type        Type
	Default     any
	Description string
}

// Object maps attribute names to nested nodes.
// Example: {"size": &Attr{Type: Number(Min(1))}, "font": Object{...}}
type Object map[string]Node

// Array declares a list of objects sharing the Items schema.
type Array struct {
	Items       Object
	Description string
}

func (*Attr) node()  {}
func (Object) node() {}
func (*Array) node() {}

// Lookup resolves a dotted path ("number.font.size") to a node.
func (o Object) Lookup(path string) (Node, bool) {
	var current Node = o
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(Object)
		if !ok {
			return nil, false
		}
		next, ok := obj[part]
		if !ok || next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Attr resolves a dotted path to a leaf attribute.
func (o Object) Attr(path string) (*Attr, bool) {
	node, ok := o.Lookup(path)
	if !ok {
		return nil, false
	}
	attr, ok := node.(*Attr)
	return attr, ok
}

// Object resolves a dotted path to a nested object. A missing path yields
// an empty object.
func (o Object) Object(path string) Object {
	node, ok := o.Lookup(path)
	if !ok {
		return Object{}
	}
	switch n := node.(type) {
	case Object:
		return n
	case *Array:
		return n.Items
	}
	return Object{}
}

// Keys returns the sorted attribute names of this level.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks data against the schema without applying defaults.
// It reports values that are present but would be replaced by a default,
// and keys the schema does not know. Keys starting with "_" are private
// and skipped. Returns an *AggregateError with all failures found.
func Validate(schema Object, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error
	validateObject(schema, data, "", &errs)

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateObject(schema Object, data map[string]any, prefix string, errs *[]error) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.HasPrefix(key, "_") {
			continue
		}
		value := data[key]
		path := join(prefix, key)
		node, ok := schema[key]
		if !ok {
			*errs = append(*errs, &ValidationError{Key: path, Reason: "unknown attribute", Value: value})
			continue
		}
		if value == nil {
			continue
		}

		switch n := node.(type) {
		case *Attr:
			if err := n.Type.Validate(value); err != nil {
				*errs = append(*errs, &ValidationError{Key: path, Reason: err.Error(), Value: value})
			}
		case Object:
			child, ok := value.(map[string]any)
			if !ok {
				*errs = append(*errs, &ValidationError{Key: path, Reason: "expected object", Value: value})
				continue
			}
			validateObject(n, child, path, errs)
		case *Array:
			list, ok := ToList(value)
			if !ok {
				*errs = append(*errs, &ValidationError{Key: path, Reason: "expected list", Value: value})
				continue
			}
			for i, item := range list {
				itemPath := path + "[" + strconv.Itoa(i) + "]"
				child, ok := item.(map[string]any)
				if !ok {
					*errs = append(*errs, &ValidationError{Key: itemPath, Reason: "expected object", Value: item})
					continue
				}
				validateObject(n.Items, child, itemPath, errs)
			}
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
