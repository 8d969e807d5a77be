package binding

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a JSON or YAML submission. Mappings decode to *Map so the
// submission order of keys survives.
func Decode(data []byte) (any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("binding: decode submission: %w", err)
	}
	return convert(&root)
}

func convert(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convert(node.Content[0])
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("binding: line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := convert(valueNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := convert(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.AliasNode:
		return convert(node.Alias)
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("binding: line %d: %w", node.Line, err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("binding: unsupported yaml node kind %d", node.Kind)
	}
}
