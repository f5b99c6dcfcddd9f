package domain

// Reference kinds declared by the schema and carried through matching.
const (
	ReferenceKindLeafref = "leafref"
	DependencyKindDirect = "direct_leafref"
)

// ConfidenceSchemaVerified marks dependencies derived from a declared
// schema reference, as opposed to any future heuristic-only source.
const ConfidenceSchemaVerified = "schema_verified"

// ReferenceEdge is one cross-object reference relationship declared by the
// schema model. Paths are schema-level: they carry no instance keys and may
// use "../" parent-relative notation on the target side.
type ReferenceEdge struct {
	SourcePath  string `json:"source_path"`
	TargetPath  string `json:"target_path"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

// DependencyRecord is one resolved instance of "this change affects that
// object": a detected change correlated with a schema reference edge.
// ResolvedIdentifier names the affected object when target resolution
// succeeded, and falls back to the changed object's own identifier when it
// did not.
type DependencyRecord struct {
	ChangePath         Path   `json:"change_path"`
	SourcePath         string `json:"source_path"`
	TargetPath         string `json:"target_path"`
	Kind               string `json:"kind"`
	ResolvedIdentifier string `json:"resolved_identifier,omitempty"`
	Confidence         string `json:"confidence"`
}
