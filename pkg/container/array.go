// Package container resolves list-valued attributes whose items are objects
// sharing one schema, such as gauge steps or axis tick format stops.
package container

import (
	"fmt"
	"strings"

	"github.com/aretw0/indicator/pkg/coerce"
	"github.com/aretw0/indicator/pkg/schema"
)

// Item is one list element under resolution.
type Item struct {
	// Index is the position of the element in the input list.
	Index int
	*coerce.Binding
	rejected bool
}

// Reject drops the item from the resolved list.
func (it *Item) Reject() {
	it.rejected = true
}

// Handler resolves the attributes of one item.
type Handler func(item *Item)

// Options configures Resolve.
type Options struct {
	// Name is the list attribute in both parent containers ("steps").
	Name string
	// Items is the schema shared by every item.
	Items schema.Object
	// Handle resolves one item. Required.
	Handle Handler
	// Template is the parent's template; its "<singular>defaults" entry
	// ("stepdefaults") applies to every item.
	Template map[string]any
	// Prefix and Observer are forwarded to item bindings.
	Prefix   string
	Observer coerce.Observer
}

// Resolve defaults every object in parentIn[opts.Name] and writes the kept
// items, in input order, to parentOut[opts.Name]. A missing or non-list
// input yields an empty list; non-object elements and rejected items are
// dropped. Items are never compared with each other.
func Resolve(parentIn, parentOut map[string]any, opts Options) []map[string]any {
	raw, _ := coerce.Get(parentIn, opts.Name)
	list, ok := schema.ToList(raw)
	if !ok {
		list = nil
	}

	itemTemplate := coerce.NestedMap(opts.Template, ItemDefaultsKey(opts.Name))

	resolved := make([]map[string]any, 0, len(list))
	for i, element := range list {
		itemIn, ok := element.(map[string]any)
		if !ok {
			continue
		}

		item := &Item{
			Index: i,
			Binding: &coerce.Binding{
				In:       itemIn,
				Out:      map[string]any{"_index": i},
				Schema:   opts.Items,
				Template: itemTemplate,
				Prefix:   fmt.Sprintf("%s[%d]", join(opts.Prefix, opts.Name), i),
				Observer: opts.Observer,
			},
		}
		opts.Handle(item)
		if item.rejected {
			continue
		}
		resolved = append(resolved, item.Out)
	}

	out := make([]any, len(resolved))
	for i, m := range resolved {
		out[i] = m
	}
	parentOut[opts.Name] = out

	return resolved
}

// ItemDefaultsKey names the template entry holding per-item defaults:
// "steps" -> "stepdefaults".
func ItemDefaultsKey(name string) string {
	return strings.TrimSuffix(name, "s") + "defaults"
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
