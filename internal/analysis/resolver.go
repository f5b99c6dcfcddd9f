package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"netimpact/internal/domain"
)

// identifierFields are tried in priority order when extracting a
// human-meaningful name from a resolved configuration object.
var identifierFields = []string{"name", "id", "vlan-id", "sequence-id", "interface-id", "set-name"}

// genericSegments never serve as an object identifier on their own.
var genericSegments = map[string]struct{}{"config": {}, "state": {}}

var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Resolver extracts object identifiers from rendered change paths and from
// configuration trees addressed by schema target paths. It is stateless and
// safe for concurrent use.
type Resolver struct{}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// IdentifierFromPath returns the first bracketed list key in the path that
// is not purely numeric. Purely numeric bracket contents are positional
// sequence numbers, not names. When no bracketed key qualifies, the last
// non-generic path segment is returned instead, stripped of its module
// prefix; an empty path yields "".
func (r *Resolver) IdentifierFromPath(path string) string {
	for _, match := range bracketPattern.FindAllStringSubmatch(path, -1) {
		if !isNumeric(match[1]) {
			return match[1]
		}
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := stripModulePrefix(bracketPattern.ReplaceAllString(segments[i], ""))
		if segment == "" {
			continue
		}
		if _, generic := genericSegments[segment]; generic {
			continue
		}
		return segment
	}
	return ""
}

// IdentifiersAtPath walks the tree along a schema target path and returns
// the identifiers of whatever it finds there. Module prefixes are resolved
// on both sides, list elements are addressed with "[field=value]" or
// "[value]" bracket syntax (the bare form selects by the "name" field), and
// a list traversed without a selector fans out across all elements. A path
// that leads nowhere yields an empty result, never an error.
func (r *Resolver) IdentifiersAtPath(tree *domain.Tree, path string) []string {
	if tree == nil || path == "" {
		return nil
	}

	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}

	return collectIdentifiers(descend(tree, segments))
}

// ResolveTargets resolves the objects a dependency actually points at in
// the current configuration. When the schema target path cannot be walked
// (relative "../" notation, or the subtree simply is not present) and the
// edge's source sits in the access-list subsystem, the applied-ACL fallback
// reports the interfaces that apply the changed access list. An empty
// result means the dependency stands with the changed object's own
// identifier.
func (r *Resolver) ResolveTargets(dep domain.DependencyRecord, current *domain.Tree) []string {
	ids := r.IdentifiersAtPath(current, dep.TargetPath)
	if len(ids) == 0 && strings.Contains(strings.ToLower(dep.SourcePath), "acl") {
		ids = r.aclAppliers(current, dep.ResolvedIdentifier)
	}
	return ids
}

// descend resolves the remaining path segments against a node and returns
// every value the path addresses. Lists without a bracket selector fan out.
func descend(node any, segments []string) []any {
	if len(segments) == 0 {
		if node == nil {
			return nil
		}
		return []any{node}
	}

	segment, selector := splitSelector(segments[0])
	rest := segments[1:]

	switch v := node.(type) {
	case *domain.Tree:
		child, ok := lookup(v, segment)
		if !ok {
			return nil
		}
		if selector != "" {
			list, isList := child.([]any)
			if !isList {
				return nil
			}
			elem, found := selectElem(list, selector)
			if !found {
				return nil
			}
			return descend(elem, rest)
		}
		return descend(child, rest)

	case []any:
		var results []any
		for _, elem := range v {
			results = append(results, descend(elem, segments)...)
		}
		return results

	default:
		return nil
	}
}

// splitSelector separates "segment[selector]" into its parts.
func splitSelector(segment string) (string, string) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, ""
	}
	return segment[:open], segment[open+1 : len(segment)-1]
}

// selectElem picks a list element by its selector: "field=value" compares
// the named field, a bare "value" compares the "name" field.
func selectElem(list []any, selector string) (any, bool) {
	field, value := "name", selector
	if idx := strings.IndexByte(selector, '='); idx >= 0 {
		field, value = selector[:idx], selector[idx+1:]
	}

	for _, elem := range list {
		tree, ok := elem.(*domain.Tree)
		if !ok {
			continue
		}
		if got, present := lookup(tree, field); present && fmt.Sprint(got) == value {
			return elem, true
		}
	}
	return nil, false
}

// lookup finds a tree value by key, tolerating module prefixes on either
// side: "acl" matches "openconfig-acl:acl" and vice versa.
func lookup(tree *domain.Tree, key string) (any, bool) {
	if v, ok := tree.Get(key); ok {
		return v, true
	}
	bare := stripModulePrefix(key)
	for _, candidate := range tree.Keys() {
		if stripModulePrefix(candidate) == bare {
			v, _ := tree.Get(candidate)
			return v, true
		}
	}
	return nil, false
}

// collectIdentifiers extracts identifiers from resolved values: mappings
// contribute their prioritized identifier fields, lists fan out, and a bare
// non-numeric scalar stands for itself. Purely numeric values are skipped.
func collectIdentifiers(values []any) []string {
	var ids []string
	seen := make(map[string]struct{})

	add := func(id string) {
		if id == "" || isNumeric(id) {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, value := range values {
		switch v := value.(type) {
		case *domain.Tree:
			for _, field := range identifierFields {
				if got, ok := v.Get(field); ok {
					add(fmt.Sprint(got))
				}
			}
		case []any:
			for _, id := range collectIdentifiers(v) {
				add(id)
			}
		case string:
			add(v)
		}
	}
	return ids
}

// aclAppliers returns the names of interfaces whose applied access-list
// configuration (ingress or egress) names the given access list. This is
// the one cross-reference pattern resolved without schema guidance; it is
// narrow on purpose.
func (r *Resolver) aclAppliers(current *domain.Tree, aclName string) []string {
	if current == nil || aclName == "" {
		return nil
	}

	interfacesValue, ok := lookup(current, "interfaces")
	if !ok {
		return nil
	}
	interfacesTree, ok := interfacesValue.(*domain.Tree)
	if !ok {
		return nil
	}
	listValue, ok := lookup(interfacesTree, "interface")
	if !ok {
		return nil
	}
	list, ok := listValue.([]any)
	if !ok {
		return nil
	}

	var names []string
	for _, elem := range list {
		iface, ok := elem.(*domain.Tree)
		if !ok {
			continue
		}
		aclValue, ok := lookup(iface, "acl")
		if !ok {
			continue
		}
		if !appliesACL(aclValue, aclName) {
			continue
		}
		if name, present := lookup(iface, "name"); present {
			names = append(names, fmt.Sprint(name))
		}
	}
	return names
}

// appliesACL walks an interface's applied-ACL subtree looking for a
// set-name leaf naming the access list.
func appliesACL(node any, aclName string) bool {
	switch v := node.(type) {
	case *domain.Tree:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			if stripModulePrefix(key) == "set-name" {
				if s, ok := child.(string); ok && s == aclName {
					return true
				}
				continue
			}
			if appliesACL(child, aclName) {
				return true
			}
		}
	case []any:
		for _, elem := range v {
			if appliesACL(elem, aclName) {
				return true
			}
		}
	}
	return false
}

func stripModulePrefix(segment string) string {
	if idx := strings.LastIndex(segment, ":"); idx >= 0 {
		return segment[idx+1:]
	}
	return segment
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
