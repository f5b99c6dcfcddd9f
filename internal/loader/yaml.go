package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"netimpact/internal/domain"
)

// ParseYAML decodes a YAML configuration document. The document is walked
// at the node level rather than unmarshaled into a map so that key order
// survives decoding.
func ParseYAML(data []byte) (*domain.Tree, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	value, err := convertYAMLNode(&root)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return domain.NewTree(), nil
	}

	tree, ok := value.(*domain.Tree)
	if !ok {
		return nil, fmt.Errorf("YAML config root must be a mapping, got %T", value)
	}
	return tree, nil
}

func convertYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convertYAMLNode(node.Content[0])

	case yaml.MappingNode:
		tree := domain.NewTree()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			value, err := convertYAMLNode(valueNode)
			if err != nil {
				return nil, err
			}
			tree.Set(keyNode.Value, value)
		}
		return tree, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := convertYAMLNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil

	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode YAML scalar at line %d: %w", node.Line, err)
		}
		if i, ok := value.(int); ok {
			return int64(i), nil
		}
		return value, nil

	case yaml.AliasNode:
		return convertYAMLNode(node.Alias)

	default:
		return nil, fmt.Errorf("unsupported YAML node kind %v at line %d", node.Kind, node.Line)
	}
}
