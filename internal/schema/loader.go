package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrModelNotFound reports that no schema model exists under the requested
// name. Callers treat this as an expected condition: analysis proceeds
// without schema-driven dependencies rather than failing.
var ErrModelNotFound = errors.New("schema model not found")

// nodeYAML is the on-disk shape of one schema node.
type nodeYAML struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"`
	Key         string     `yaml:"key,omitempty"`
	Type        string     `yaml:"type,omitempty"`
	Target      string     `yaml:"target,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Children    []nodeYAML `yaml:"children,omitempty"`
}

// modelYAML is the on-disk shape of a schema model file.
type modelYAML struct {
	Model string     `yaml:"model"`
	Nodes []nodeYAML `yaml:"nodes"`
}

// Load reads the schema model <name>.yaml from dir. A missing file yields
// ErrModelNotFound; a present but unreadable file is a real error.
func Load(dir, name string) (*Model, error) {
	path := filepath.Join(dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("read schema model: %w", err)
	}
	return Parse(name, data)
}

// Parse builds a Model from YAML bytes.
func Parse(name string, data []byte) (*Model, error) {
	var doc modelYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema model %s: %w", name, err)
	}
	if doc.Model != "" {
		name = doc.Model
	}

	model := &Model{Name: name}
	for _, n := range doc.Nodes {
		node, err := buildNode(n)
		if err != nil {
			return nil, err
		}
		model.Roots = append(model.Roots, node)
	}
	return model, nil
}

func buildNode(n nodeYAML) (Node, error) {
	switch n.Kind {
	case "container", "":
		c := &Container{Name: n.Name, Description: n.Description}
		for _, child := range n.Children {
			built, err := buildNode(child)
			if err != nil {
				return nil, err
			}
			c.Children = append(c.Children, built)
		}
		return c, nil
	case "list":
		l := &List{Name: n.Name, Description: n.Description, Key: n.Key}
		for _, child := range n.Children {
			built, err := buildNode(child)
			if err != nil {
				return nil, err
			}
			l.Children = append(l.Children, built)
		}
		return l, nil
	case "leaf":
		return &Leaf{Name: n.Name, Description: n.Description, Type: n.Type}, nil
	case "leafref":
		if n.Target == "" {
			return nil, fmt.Errorf("leafref node %q has no target", n.Name)
		}
		return &LeafRef{Name: n.Name, Description: n.Description, Target: n.Target}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q for %q", n.Kind, n.Name)
	}
}
