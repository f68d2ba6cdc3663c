package schema

import (
	"encoding/json"
	"fmt"
)

type attrDoc struct {
	Type        string `json:"type"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type objectDoc struct {
	Type       string `json:"type"`
	Properties Object `json:"properties"`
}

type arrayDoc struct {
	Type        string    `json:"type"`
	Items       objectDoc `json:"items"`
	Description string    `json:"description,omitempty"`
}

// MarshalJSON serializes the schema as a map of attribute names to
// {type, default, description} documents, nesting objects and arrays.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	raw := make(map[string]any, len(o))
	for key, n := range o {
		switch node := n.(type) {
		case *Attr:
			if node == nil || node.Type == nil {
				return nil, fmt.Errorf("attribute %s: type is nil", key)
			}
			raw[key] = attrDoc{Type: node.Type.Name(), Default: node.Default, Description: node.Description}
		case Object:
			raw[key] = objectDoc{Type: "object", Properties: node}
		case *Array:
			raw[key] = arrayDoc{
				Type:        "array",
				Items:       objectDoc{Type: "object", Properties: node.Items},
				Description: node.Description,
			}
		default:
			return nil, fmt.Errorf("attribute %s: unsupported node %T", key, n)
		}
	}

	return json.Marshal(raw)
}
