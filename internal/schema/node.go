// Package schema models the configuration schema as a tree of typed nodes
// and extracts the cross-object reference edges the schema declares.
//
// The node tree is an opaque, immutable description supplied by a model
// provider (the bundled YAML loader, or anything else that builds Nodes).
// Traversal dispatches on the concrete node type; nodes of unknown types
// are skipped rather than failing the walk.
package schema

// Node is one schema node. Concrete variants are Container, List, Leaf and
// LeafRef; consumers type-switch on the variant.
type Node interface {
	NodeName() string
}

// Container is an interior node grouping named children.
type Container struct {
	Name        string
	Description string
	Children    []Node
}

// List is a keyed collection of entries sharing the same child schema.
type List struct {
	Name        string
	Description string
	Key         string
	Children    []Node
}

// Leaf is a terminal value node.
type Leaf struct {
	Name        string
	Description string
	Type        string
}

// LeafRef is a reference-typed leaf: its value must match a value found at
// Target, a schema-relative path that may use "../" notation. Reference
// nodes rarely carry children, but the field exists so traversal stays
// uniform across variants.
type LeafRef struct {
	Name        string
	Description string
	Target      string
	Children    []Node
}

func (c *Container) NodeName() string { return c.Name }
func (l *List) NodeName() string      { return l.Name }
func (l *Leaf) NodeName() string      { return l.Name }
func (l *LeafRef) NodeName() string   { return l.Name }

// Model is a named, immutable schema tree. Once loaded it is never
// modified, which is what allows reference extraction to be memoized per
// model identity.
type Model struct {
	Name  string
	Roots []Node
}
