package analysis

import (
	"log"
	"strings"

	"netimpact/internal/domain"
)

// wellKnownLabels maps top-level section keywords to report headings.
// Checked in order; the first keyword contained in the section wins.
var wellKnownLabels = []struct {
	keyword string
	label   string
}{
	{"network-instance", "BGP Configuration"},
	{"acl", "Access Control Lists"},
	{"vlan", "VLAN Configuration"},
	{"interface", "Interface Configuration"},
}

// Aggregator groups changes by logical object and attaches the resolved
// dependencies each group carries.
type Aggregator struct {
	resolver *Resolver
	logger   *log.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{resolver: NewResolver(), logger: logger}
}

// ObjectLabel derives the human heading for a change path from its
// top-level section, module prefix stripped. Unrecognized sections get a
// title-cased rendering of the section name.
func ObjectLabel(path domain.Path) string {
	section := stripModulePrefix(bracketPattern.ReplaceAllString(path.First(), ""))
	lower := strings.ToLower(section)

	if lower == "device" {
		return "Device Information"
	}
	for _, known := range wellKnownLabels {
		if strings.Contains(lower, known.keyword) {
			return known.label
		}
	}
	return titleCase(section)
}

// Aggregate builds the impact report: changes grouped by object label in
// first-seen order, each group carrying the dependencies whose change paths
// belong to it. Dependencies are expanded against the current tree so the
// report names the objects actually affected; a dependency resolving back
// to one of the group's own changed objects is dropped, and the survivors
// are deduplicated by target path and resolved identifier. Every changed
// object appears in the report even with zero dependencies.
func (a *Aggregator) Aggregate(changes []domain.ChangeRecord, deps []domain.DependencyRecord, current *domain.Tree) *domain.ImpactReport {
	report := &domain.ImpactReport{}
	index := make(map[string]int)
	grouped := make(map[string][]domain.DependencyRecord)

	// First pass: group changes by object label, collect each group's own
	// identifiers and the raw dependencies related to its changes.
	for _, change := range changes {
		label := ObjectLabel(change.Path)
		i, seen := index[label]
		if !seen {
			i = len(report.Impacts)
			index[label] = i
			report.Impacts = append(report.Impacts, domain.ObjectImpact{Object: label})
		}
		impact := &report.Impacts[i]
		impact.ChangeCount++

		if id := a.resolver.IdentifierFromPath(change.Path.String()); id != "" {
			impact.AllIdentifiers = appendUnique(impact.AllIdentifiers, id)
		}

		for _, dep := range deps {
			if a.related(dep, change) {
				grouped[label] = append(grouped[label], dep)
			}
		}
	}

	// Second pass: with every group's own identifiers known, expand each
	// dependency to its affected objects and keep the ones that point
	// outside the group.
	for i := range report.Impacts {
		impact := &report.Impacts[i]
		for _, dep := range grouped[impact.Object] {
			for _, resolved := range a.expand(dep, current) {
				if containsString(impact.AllIdentifiers, resolved.ResolvedIdentifier) {
					continue
				}
				if hasDependency(impact.Dependencies, resolved) {
					continue
				}
				impact.Dependencies = append(impact.Dependencies, resolved)
			}
		}
		for _, dep := range impact.Dependencies {
			impact.AllIdentifiers = appendUnique(impact.AllIdentifiers, dep.ResolvedIdentifier)
		}
		if len(impact.Dependencies) > 0 {
			report.ObjectsWithImpacts++
		}
	}
	report.ObjectsChanged = len(report.Impacts)

	a.logger.Printf("aggregate: %d objects changed, %d with downstream impacts",
		report.ObjectsChanged, report.ObjectsWithImpacts)
	return report
}

// related decides whether a dependency belongs to a change's group. The
// identifiers extracted from both paths are compared first; paths without
// identifiers fall back to positional segment overlap.
func (a *Aggregator) related(dep domain.DependencyRecord, change domain.ChangeRecord) bool {
	depID := a.resolver.IdentifierFromPath(dep.ChangePath.String())
	changeID := a.resolver.IdentifierFromPath(change.Path.String())
	if depID != "" && changeID != "" {
		return depID == changeID
	}

	depParts := dep.ChangePath.Segments()
	changeParts := change.Path.Segments()
	n := len(depParts)
	if len(changeParts) < n {
		n = len(changeParts)
	}
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if !strings.Contains(depParts[i], changeParts[i]) && !strings.Contains(changeParts[i], depParts[i]) {
			return false
		}
	}
	return true
}

// expand resolves a dependency's targets in the current tree, producing one
// record per affected object. When nothing resolves, the record stands as
// matched, identified by the changed object itself.
func (a *Aggregator) expand(dep domain.DependencyRecord, current *domain.Tree) []domain.DependencyRecord {
	targets := a.resolver.ResolveTargets(dep, current)
	if len(targets) == 0 {
		return []domain.DependencyRecord{dep}
	}

	expanded := make([]domain.DependencyRecord, 0, len(targets))
	for _, target := range targets {
		resolved := dep
		resolved.ResolvedIdentifier = target
		expanded = append(expanded, resolved)
	}
	return expanded
}

func hasDependency(deps []domain.DependencyRecord, dep domain.DependencyRecord) bool {
	for _, d := range deps {
		if d.TargetPath == dep.TargetPath && d.ResolvedIdentifier == dep.ResolvedIdentifier {
			return true
		}
	}
	return false
}

func appendUnique(list []string, value string) []string {
	if value == "" || containsString(list, value) {
		return list
	}
	return append(list, value)
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// titleCase renders a hyphenated section name as a heading.
func titleCase(section string) string {
	words := strings.Split(section, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
