// Package diff computes the structural difference between two
// configuration trees. The engine works in partial-overlay mode: only
// top-level sections present in the proposed tree are examined, so the
// result describes the effect of applying the proposal on top of the
// current configuration.
package diff

import (
	"fmt"
	"log"
	"strconv"

	"netimpact/internal/domain"
)

// keyFieldCandidates are tried in priority order to identify a list
// element across the two trees; the positional index is the fallback.
var keyFieldCandidates = []string{"name", "id", "vlan-id", "sequence-id", "interface-id"}

// DefaultMetadataSections are top-level keys that describe the document
// rather than the device and are never diffed.
var DefaultMetadataSections = []string{"device"}

// Engine compares configuration trees. It never mutates its inputs and is
// safe for concurrent use.
type Engine struct {
	metadata    map[string]struct{}
	fullReplace bool
	logger      *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetadataSections replaces the default set of skipped top-level keys.
func WithMetadataSections(sections []string) Option {
	return func(e *Engine) {
		e.metadata = make(map[string]struct{}, len(sections))
		for _, s := range sections {
			e.metadata[s] = struct{}{}
		}
	}
}

// WithFullReplace treats the proposal as a full configuration replacement:
// top-level sections absent from it are reported as deleted.
func WithFullReplace() Option {
	return func(e *Engine) { e.fullReplace = true }
}

// WithLogger sets the engine's logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine creates a diff engine with the default metadata skip set.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: log.Default()}
	WithMetadataSections(DefaultMetadataSections)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diff compares the proposed tree against the current one and returns the
// detected changes in traversal order. A nil current tree is treated as
// empty; callers are expected to reject a nil proposed tree before calling.
func (e *Engine) Diff(current, proposed *domain.Tree) []domain.ChangeRecord {
	var changes []domain.ChangeRecord
	if proposed == nil {
		return changes
	}

	for _, key := range proposed.Keys() {
		if _, skip := e.metadata[key]; skip {
			continue
		}
		proposedValue, _ := proposed.Get(key)
		path := domain.NewPath(key)

		currentValue, ok := current.Get(key)
		if !ok {
			changes = append(changes, domain.ChangeRecord{
				Path:        path,
				Type:        domain.ChangeAdded,
				NewValue:    proposedValue,
				Description: fmt.Sprintf("New configuration section: %s", key),
			})
			continue
		}
		changes = append(changes, e.compare(currentValue, proposedValue, path)...)
	}

	if e.fullReplace {
		for _, key := range current.Keys() {
			if _, skip := e.metadata[key]; skip {
				continue
			}
			if !proposed.Has(key) {
				currentValue, _ := current.Get(key)
				changes = append(changes, domain.ChangeRecord{
					Path:        domain.NewPath(key),
					Type:        domain.ChangeDeleted,
					OldValue:    currentValue,
					Description: fmt.Sprintf("Removed configuration section: %s", key),
				})
			}
		}
	}

	e.logger.Printf("diff: found %d configuration changes", len(changes))
	return changes
}

// compare recursively diffs one subtree. Any structurally surprising pair
// (mapping against scalar, mismatched list shapes) degrades to a single
// modified record at the path instead of failing the traversal.
func (e *Engine) compare(current, proposed any, path domain.Path) []domain.ChangeRecord {
	var changes []domain.ChangeRecord

	switch proposedValue := proposed.(type) {
	case *domain.Tree:
		currentTree, ok := current.(*domain.Tree)
		if !ok {
			return append(changes, modifiedRecord(path, current, proposed))
		}
		for _, key := range proposedValue.Keys() {
			childValue, _ := proposedValue.Get(key)
			childPath := path.Child(key)

			currentChild, present := currentTree.Get(key)
			if !present {
				changes = append(changes, domain.ChangeRecord{
					Path:        childPath,
					Type:        domain.ChangeAdded,
					NewValue:    childValue,
					Description: fmt.Sprintf("Added configuration: %s", childPath),
				})
				continue
			}
			if domain.Equal(currentChild, childValue) {
				continue
			}
			switch childValue.(type) {
			case *domain.Tree, []any:
				changes = append(changes, e.compare(currentChild, childValue, childPath)...)
			default:
				changes = append(changes, modifiedRecord(childPath, currentChild, childValue))
			}
		}

	case []any:
		currentList, ok := current.([]any)
		if !ok {
			return append(changes, modifiedRecord(path, current, proposed))
		}
		changes = append(changes, e.compareLists(currentList, proposedValue, path)...)

	default:
		if !domain.Equal(current, proposed) {
			changes = append(changes, modifiedRecord(path, current, proposed))
		}
	}

	return changes
}

// compareLists pairs complex list elements by key field; scalar lists are
// compared as whole values without element-level diffing.
func (e *Engine) compareLists(current, proposed []any, path domain.Path) []domain.ChangeRecord {
	var changes []domain.ChangeRecord

	if allScalars(proposed) {
		if !domain.Equal(current, proposed) {
			changes = append(changes, domain.ChangeRecord{
				Path:        path,
				Type:        domain.ChangeModified,
				OldValue:    current,
				NewValue:    proposed,
				Description: fmt.Sprintf("List modified at %s", path),
			})
		}
		return changes
	}

	currentByKey := make(map[string]any, len(current))
	for i, item := range current {
		currentByKey[listItemKey(item, i)] = item
	}

	for i, item := range proposed {
		key := listItemKey(item, i)
		itemPath := path.ListElem(key)

		currentItem, ok := currentByKey[key]
		if !ok {
			changes = append(changes, domain.ChangeRecord{
				Path:        itemPath,
				Type:        domain.ChangeAdded,
				NewValue:    item,
				Description: fmt.Sprintf("Added list item: %s", itemPath),
			})
			continue
		}
		if !domain.Equal(currentItem, item) {
			changes = append(changes, e.compare(currentItem, item, itemPath)...)
		}
	}

	return changes
}

// listItemKey resolves the identity of a list element: the first key field
// candidate present on the item, or the positional index.
func listItemKey(item any, index int) string {
	if tree, ok := item.(*domain.Tree); ok {
		for _, candidate := range keyFieldCandidates {
			if v, present := tree.Get(candidate); present {
				return fmt.Sprint(v)
			}
		}
	}
	return strconv.Itoa(index)
}

func allScalars(list []any) bool {
	for _, item := range list {
		switch item.(type) {
		case *domain.Tree, []any:
			return false
		}
	}
	return true
}

func modifiedRecord(path domain.Path, oldValue, newValue any) domain.ChangeRecord {
	return domain.ChangeRecord{
		Path:        path,
		Type:        domain.ChangeModified,
		OldValue:    oldValue,
		NewValue:    newValue,
		Description: fmt.Sprintf("Modified %s: %v -> %v", path, oldValue, newValue),
	}
}
