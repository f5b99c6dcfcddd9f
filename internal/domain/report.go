package domain

// ObjectImpact is the aggregated view of one logical configuration object:
// how many of its fields changed, which dependencies those changes resolved
// to, and every identifier involved on either side.
type ObjectImpact struct {
	Object         string             `json:"object"`
	ChangeCount    int                `json:"change_count"`
	Dependencies   []DependencyRecord `json:"dependencies"`
	AllIdentifiers []string           `json:"all_identifiers"`
}

// ImpactReport is the final product of one analysis run: per-object impact
// groups in the order the objects were first seen among the changes.
// A changed object with no resolved dependencies still appears with an
// empty dependency list.
type ImpactReport struct {
	Impacts            []ObjectImpact `json:"impacts"`
	ObjectsChanged     int            `json:"objects_changed"`
	ObjectsWithImpacts int            `json:"objects_with_impacts"`
}

// Impact returns the group for the named object, or nil.
func (r *ImpactReport) Impact(object string) *ObjectImpact {
	for i := range r.Impacts {
		if r.Impacts[i].Object == object {
			return &r.Impacts[i]
		}
	}
	return nil
}
