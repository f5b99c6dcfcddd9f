package schema

import (
	"log"
	"sync"

	"netimpact/internal/domain"
)

// The reference index is a process-wide memoization keyed by model
// identity. Models are immutable once loaded, so entries are never
// invalidated; concurrent analyses share the cached edge list read-only.
var (
	refMu    sync.RWMutex
	refCache = make(map[*Model][]domain.ReferenceEdge)
)

// References returns every reference edge the model declares, building and
// caching the edge list on first use. A nil model yields no edges. The
// returned slice is shared; callers must not modify it.
func References(m *Model, logger *log.Logger) []domain.ReferenceEdge {
	if m == nil {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}

	refMu.RLock()
	edges, ok := refCache[m]
	refMu.RUnlock()
	if ok {
		return edges
	}

	refMu.Lock()
	defer refMu.Unlock()
	if edges, ok := refCache[m]; ok {
		return edges
	}

	edges = extractEdges(m, logger)
	refCache[m] = edges
	logger.Printf("schema %s: indexed %d reference edges", m.Name, len(edges))
	return edges
}

// extractEdges walks the whole node tree depth-first, accumulating a
// schema path per node and recording an edge at every reference-typed
// leaf. Recursion is uniform across variants; a node that cannot be
// classified only prunes its own subtree.
func extractEdges(m *Model, logger *log.Logger) []domain.ReferenceEdge {
	var edges []domain.ReferenceEdge
	for _, root := range m.Roots {
		edges = walkNode(root, "", edges, logger)
	}
	return edges
}

func walkNode(n Node, path string, edges []domain.ReferenceEdge, logger *log.Logger) []domain.ReferenceEdge {
	if n == nil {
		return edges
	}
	name := n.NodeName()
	if name == "" {
		logger.Printf("schema: skipping unnamed node under %q", path)
		return edges
	}
	if path != "" {
		path = path + "/" + name
	} else {
		path = name
	}

	switch node := n.(type) {
	case *LeafRef:
		edges = append(edges, domain.ReferenceEdge{
			SourcePath:  path,
			TargetPath:  node.Target,
			Kind:        domain.ReferenceKindLeafref,
			Description: node.Description,
		})
		for _, child := range node.Children {
			edges = walkNode(child, path, edges, logger)
		}
	case *Container:
		for _, child := range node.Children {
			edges = walkNode(child, path, edges, logger)
		}
	case *List:
		for _, child := range node.Children {
			edges = walkNode(child, path, edges, logger)
		}
	case *Leaf:
		// terminal, nothing to record
	default:
		logger.Printf("schema: skipping unclassified node %q at %q", name, path)
	}
	return edges
}
