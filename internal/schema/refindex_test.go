package schema

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func aclModel() *Model {
	return &Model{
		Name: "openconfig",
		Roots: []Node{
			&Container{
				Name: "acl",
				Children: []Node{
					&Container{
						Name: "acl-sets",
						Children: []Node{
							&List{
								Name: "acl-set",
								Key:  "name",
								Children: []Node{
									&Leaf{Name: "name", Type: "string"},
								},
							},
						},
					},
				},
			},
			&Container{
				Name: "interfaces",
				Children: []Node{
					&List{
						Name: "interface",
						Key:  "name",
						Children: []Node{
							&Leaf{Name: "name", Type: "string"},
							&Container{
								Name: "acl",
								Children: []Node{
									&LeafRef{
										Name:        "ingress-acl-set",
										Target:      "../../../../acl/acl-sets/acl-set/name",
										Description: "Reference to the ACL set applied on ingress",
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestReferences(t *testing.T) {
	logger := log.New(os.Stderr, "", 0)

	t.Run("extracts edges from reference leaves", func(t *testing.T) {
		edges := References(aclModel(), logger)

		if len(edges) != 1 {
			t.Fatalf("expected 1 edge, got %d", len(edges))
		}
		edge := edges[0]
		if edge.SourcePath != "interfaces/interface/acl/ingress-acl-set" {
			t.Errorf("unexpected source path: %s", edge.SourcePath)
		}
		if edge.TargetPath != "../../../../acl/acl-sets/acl-set/name" {
			t.Errorf("unexpected target path: %s", edge.TargetPath)
		}
		if edge.Kind != "leafref" {
			t.Errorf("unexpected kind: %s", edge.Kind)
		}
	})

	t.Run("memoizes per model identity", func(t *testing.T) {
		model := aclModel()
		first := References(model, logger)
		second := References(model, logger)

		if len(first) != len(second) {
			t.Fatalf("cached result differs: %d vs %d", len(first), len(second))
		}
		if len(first) > 0 && &first[0] != &second[0] {
			t.Error("expected the cached slice to be returned on the second call")
		}
	})

	t.Run("nil model yields no edges", func(t *testing.T) {
		if edges := References(nil, logger); edges != nil {
			t.Errorf("expected nil edges, got %v", edges)
		}
	})

	t.Run("skips unclassifiable nodes without aborting", func(t *testing.T) {
		model := &Model{
			Name: "partial",
			Roots: []Node{
				nil,
				&Container{Name: "", Children: []Node{&LeafRef{Name: "x", Target: "/y"}}},
				&LeafRef{Name: "good", Target: "/targets/name"},
			},
		}

		edges := References(model, logger)
		if len(edges) != 1 {
			t.Fatalf("expected 1 edge from the valid subtree, got %d", len(edges))
		}
		if edges[0].SourcePath != "good" {
			t.Errorf("unexpected source path: %s", edges[0].SourcePath)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads model from yaml", func(t *testing.T) {
		dir := t.TempDir()
		doc := `model: openconfig
nodes:
  - name: acl
    kind: container
    children:
      - name: acl-sets
        kind: container
        children:
          - name: acl-set
            kind: list
            key: name
            children:
              - name: name
                kind: leaf
                type: string
  - name: interfaces
    kind: container
    children:
      - name: interface
        kind: list
        key: name
        children:
          - name: ingress-acl-set
            kind: leafref
            target: ../../acl/acl-sets/acl-set/name
            description: Applied ingress ACL
`
		if err := os.WriteFile(filepath.Join(dir, "openconfig.yaml"), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}

		model, err := Load(dir, "openconfig")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if model.Name != "openconfig" {
			t.Errorf("unexpected model name: %s", model.Name)
		}
		if len(model.Roots) != 2 {
			t.Fatalf("expected 2 root nodes, got %d", len(model.Roots))
		}

		edges := References(model, nil)
		if len(edges) != 1 {
			t.Fatalf("expected 1 edge, got %d", len(edges))
		}
		if edges[0].Description != "Applied ingress ACL" {
			t.Errorf("unexpected description: %s", edges[0].Description)
		}
	})

	t.Run("missing model is a typed outcome", func(t *testing.T) {
		_, err := Load(t.TempDir(), "nope")
		if err == nil {
			t.Fatal("expected error for missing model")
		}
		if !errors.Is(err, ErrModelNotFound) {
			t.Errorf("expected ErrModelNotFound, got %v", err)
		}
	})

	t.Run("rejects leafref without target", func(t *testing.T) {
		_, err := Parse("bad", []byte("nodes:\n  - name: x\n    kind: leafref\n"))
		if err == nil {
			t.Error("expected error for leafref without target")
		}
	})

	t.Run("rejects unknown node kind", func(t *testing.T) {
		_, err := Parse("bad", []byte("nodes:\n  - name: x\n    kind: choice\n"))
		if err == nil {
			t.Error("expected error for unknown kind")
		}
	})
}
