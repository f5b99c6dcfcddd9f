package domain

// ChangeType classifies a detected configuration difference.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// ChangeRecord is one detected difference between the current and the
// proposed configuration. Records are immutable once created; their order
// is the order the differencer visited the proposed tree.
type ChangeRecord struct {
	Path        Path       `json:"path"`
	Type        ChangeType `json:"type"`
	OldValue    any        `json:"old_value,omitempty"`
	NewValue    any        `json:"new_value,omitempty"`
	Description string     `json:"description"`
}
