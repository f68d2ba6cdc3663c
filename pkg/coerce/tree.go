package coerce

import "strings"

// Get reads a dotted path from a tree. Nil values count as absent.
func Get(tree map[string]any, path string) (any, bool) {
	if tree == nil {
		return nil, false
	}
	parts := strings.Split(path, ".")
	current := tree
	for i, part := range parts {
		v, ok := current[part]
		if !ok || v == nil {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// Set writes value at a dotted path, creating (or replacing non-map)
// intermediate containers.
func Set(tree map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// Delete removes the leaf at a dotted path. Missing paths are ignored.
func Delete(tree map[string]any, path string) {
	parts := strings.Split(path, ".")
	current := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return
		}
		current = next
	}
	delete(current, parts[len(parts)-1])
}

// NestedMap returns the map at path, or an empty map when the path is
// missing or does not hold an object. The result must be treated as
// read-only when it belongs to caller input.
func NestedMap(tree map[string]any, path string) map[string]any {
	v, ok := Get(tree, path)
	if !ok {
		return map[string]any{}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// Public returns a copy of tree without private ("_"-prefixed) keys, at
// every depth.
func Public(tree map[string]any) map[string]any {
	return public(tree).(map[string]any)
}

func public(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			if strings.HasPrefix(k, "_") {
				continue
			}
			out[k] = public(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = public(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = public(val)
		}
		return out
	default:
		return v
	}
}

func join(prefix, path string) string {
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}
