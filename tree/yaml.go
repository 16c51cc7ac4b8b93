package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML parses the first document of a YAML stream into a Value. Captured
// API responses are often archived as YAML for readability; this path
// normalizes them into the same tree shape the JSON path produces.
func FromYAML(data []byte) (Value, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("tree: yaml decode: %w", err)
	}
	return Value{raw: yamlNormalize(node), present: true}, nil
}

// yamlNormalize rewrites YAML-decoded values (which may contain map[any]any
// and int scalars) into the JSON-like representation Value navigates.
func yamlNormalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlNormalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = yamlNormalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlNormalize(e)
		}
		return out
	default:
		return t
	}
}
