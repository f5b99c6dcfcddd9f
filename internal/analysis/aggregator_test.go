package analysis

import (
	"testing"

	"netimpact/internal/domain"
)

func TestObjectLabel(t *testing.T) {
	cases := []struct {
		section string
		want    string
	}{
		{"device", "Device Information"},
		{"openconfig-interfaces:interfaces", "Interface Configuration"},
		{"openconfig-vlan:vlans", "VLAN Configuration"},
		{"openconfig-acl:acl", "Access Control Lists"},
		{"acl-sets", "Access Control Lists"},
		{"openconfig-network-instance:network-instances", "BGP Configuration"},
		{"routing-policy", "Routing Policy"},
		{"system", "System"},
	}

	for _, tc := range cases {
		t.Run(tc.section, func(t *testing.T) {
			if got := ObjectLabel(domain.NewPath(tc.section, "anything")); got != tc.want {
				t.Errorf("ObjectLabel(%q) = %q, want %q", tc.section, got, tc.want)
			}
		})
	}
}

func TestAggregateWithoutDependencies(t *testing.T) {
	changes := []domain.ChangeRecord{{
		Path: domain.NewPath("acl-sets", "acl-set[USER_INBOUND_V4]", "config", "name"),
		Type: domain.ChangeModified,
	}}

	report := NewAggregator(quietLogger()).Aggregate(changes, nil, currentConfig())

	if report.ObjectsChanged != 1 || report.ObjectsWithImpacts != 0 {
		t.Fatalf("unexpected counts: changed=%d with_impacts=%d",
			report.ObjectsChanged, report.ObjectsWithImpacts)
	}
	impact := report.Impact("Access Control Lists")
	if impact == nil {
		t.Fatal("missing ACL group")
	}
	if impact.ChangeCount != 1 {
		t.Errorf("expected change_count 1, got %d", impact.ChangeCount)
	}
	if len(impact.Dependencies) != 0 {
		t.Errorf("expected no dependencies, got %v", impact.Dependencies)
	}
	if len(impact.AllIdentifiers) != 1 || impact.AllIdentifiers[0] != "USER_INBOUND_V4" {
		t.Errorf("unexpected identifiers: %v", impact.AllIdentifiers)
	}
}

func TestAggregateResolvesImpactedObjects(t *testing.T) {
	changePath := domain.NewPath("openconfig-acl:acl", "acl-sets", "acl-set[USER_INBOUND_V4]", "config", "description")
	changes := []domain.ChangeRecord{{Path: changePath, Type: domain.ChangeModified}}
	deps := []domain.DependencyRecord{{
		ChangePath:         changePath,
		SourcePath:         "interfaces/interface/acl/ingress-acl-set",
		TargetPath:         "../../../../acl/acl-sets/acl-set/name",
		Kind:               domain.DependencyKindDirect,
		ResolvedIdentifier: "USER_INBOUND_V4",
		Confidence:         domain.ConfidenceSchemaVerified,
	}}

	report := NewAggregator(quietLogger()).Aggregate(changes, deps, currentConfig())

	impact := report.Impact("Access Control Lists")
	if impact == nil {
		t.Fatal("missing ACL group")
	}
	if len(impact.Dependencies) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(impact.Dependencies))
	}
	if impact.Dependencies[0].ResolvedIdentifier != "eth1" {
		t.Errorf("expected the applying interface, got %s", impact.Dependencies[0].ResolvedIdentifier)
	}
	want := []string{"USER_INBOUND_V4", "eth1"}
	if len(impact.AllIdentifiers) != len(want) {
		t.Fatalf("unexpected identifiers: %v", impact.AllIdentifiers)
	}
	for i, id := range want {
		if impact.AllIdentifiers[i] != id {
			t.Errorf("identifier %d: got %s, want %s", i, impact.AllIdentifiers[i], id)
		}
	}
	if report.ObjectsWithImpacts != 1 {
		t.Errorf("expected 1 object with impacts, got %d", report.ObjectsWithImpacts)
	}
}

func TestAggregateDropsSelfImpacts(t *testing.T) {
	changePath := domain.NewPath("openconfig-interfaces:interfaces", "interface[eth1]", "openconfig-acl:acl")
	changes := []domain.ChangeRecord{{Path: changePath, Type: domain.ChangeAdded}}
	deps := []domain.DependencyRecord{{
		ChangePath:         changePath,
		SourcePath:         "interfaces/interface/acl/ingress-acl-set",
		TargetPath:         "../../../../acl/acl-sets/acl-set/name",
		Kind:               domain.DependencyKindDirect,
		ResolvedIdentifier: "eth1",
		Confidence:         domain.ConfidenceSchemaVerified,
	}}

	report := NewAggregator(quietLogger()).Aggregate(changes, deps, currentConfig())

	impact := report.Impact("Interface Configuration")
	if impact == nil {
		t.Fatal("missing interface group")
	}
	if len(impact.Dependencies) != 0 {
		t.Errorf("dependency resolving to the changed object leaked through: %v", impact.Dependencies)
	}
	if len(impact.AllIdentifiers) != 1 || impact.AllIdentifiers[0] != "eth1" {
		t.Errorf("unexpected identifiers: %v", impact.AllIdentifiers)
	}
}

func TestAggregateDeduplicatesDependencies(t *testing.T) {
	first := domain.NewPath("openconfig-acl:acl", "acl-sets", "acl-set[USER_INBOUND_V4]", "config", "description")
	second := domain.NewPath("openconfig-acl:acl", "acl-sets", "acl-set[USER_INBOUND_V4]", "config", "name")
	changes := []domain.ChangeRecord{
		{Path: first, Type: domain.ChangeModified},
		{Path: second, Type: domain.ChangeModified},
	}
	dep := domain.DependencyRecord{
		SourcePath:         "interfaces/interface/acl/ingress-acl-set",
		TargetPath:         "../../../../acl/acl-sets/acl-set/name",
		Kind:               domain.DependencyKindDirect,
		ResolvedIdentifier: "USER_INBOUND_V4",
		Confidence:         domain.ConfidenceSchemaVerified,
	}
	depA, depB := dep, dep
	depA.ChangePath = first
	depB.ChangePath = second

	report := NewAggregator(quietLogger()).Aggregate(changes, []domain.DependencyRecord{depA, depB}, currentConfig())

	impact := report.Impact("Access Control Lists")
	if impact == nil {
		t.Fatal("missing ACL group")
	}
	if impact.ChangeCount != 2 {
		t.Errorf("expected change_count 2, got %d", impact.ChangeCount)
	}
	if len(impact.Dependencies) != 1 {
		t.Errorf("expected deduplicated dependency list, got %v", impact.Dependencies)
	}
}
