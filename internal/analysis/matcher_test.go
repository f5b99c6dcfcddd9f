package analysis

import (
	"io"
	"log"
	"testing"

	"netimpact/internal/domain"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func ingressACLEdge() domain.ReferenceEdge {
	return domain.ReferenceEdge{
		SourcePath:  "interfaces/interface/acl/ingress-acl-set",
		TargetPath:  "../../../../acl/acl-sets/acl-set/name",
		Kind:        domain.ReferenceKindLeafref,
		Description: "Reference to the ACL set applied on ingress",
	}
}

func TestMatch(t *testing.T) {
	matcher := NewMatcher(quietLogger())

	t.Run("interface change matches interface-subsystem edge", func(t *testing.T) {
		changes := []domain.ChangeRecord{{
			Path: domain.NewPath("openconfig-interfaces:interfaces", "interface[eth1]", "openconfig-acl:acl"),
			Type: domain.ChangeAdded,
		}}

		deps := matcher.Match(changes, []domain.ReferenceEdge{ingressACLEdge()})
		if len(deps) != 1 {
			t.Fatalf("expected 1 dependency, got %d", len(deps))
		}
		dep := deps[0]
		if dep.Kind != domain.DependencyKindDirect {
			t.Errorf("unexpected kind: %s", dep.Kind)
		}
		if dep.Confidence != domain.ConfidenceSchemaVerified {
			t.Errorf("unexpected confidence: %s", dep.Confidence)
		}
		if dep.ResolvedIdentifier != "eth1" {
			t.Errorf("unexpected resolved identifier: %s", dep.ResolvedIdentifier)
		}
		if dep.SourcePath != "interfaces/interface/acl/ingress-acl-set" {
			t.Errorf("unexpected source path: %s", dep.SourcePath)
		}
	})

	t.Run("acl change matches by token overlap", func(t *testing.T) {
		changes := []domain.ChangeRecord{{
			Path: domain.NewPath("openconfig-acl:acl", "acl-sets", "acl-set[USER_INBOUND_V4]", "config", "description"),
			Type: domain.ChangeModified,
		}}

		deps := matcher.Match(changes, []domain.ReferenceEdge{ingressACLEdge()})
		if len(deps) != 1 {
			t.Fatalf("expected 1 dependency, got %d", len(deps))
		}
		if deps[0].ResolvedIdentifier != "USER_INBOUND_V4" {
			t.Errorf("unexpected resolved identifier: %s", deps[0].ResolvedIdentifier)
		}
	})

	t.Run("unrelated change matches nothing", func(t *testing.T) {
		changes := []domain.ChangeRecord{{
			Path: domain.NewPath("openconfig-system:system", "ntp", "enabled"),
			Type: domain.ChangeModified,
		}}

		if deps := matcher.Match(changes, []domain.ReferenceEdge{ingressACLEdge()}); len(deps) != 0 {
			t.Errorf("expected no dependencies, got %v", deps)
		}
	})

	t.Run("no edges means no dependencies", func(t *testing.T) {
		changes := []domain.ChangeRecord{{
			Path: domain.NewPath("openconfig-interfaces:interfaces", "interface[eth0]", "config", "mtu"),
			Type: domain.ChangeModified,
		}}

		if deps := matcher.Match(changes, nil); deps != nil {
			t.Errorf("expected nil dependencies without edges, got %v", deps)
		}
	})

	t.Run("one record per matching edge", func(t *testing.T) {
		egress := ingressACLEdge()
		egress.SourcePath = "interfaces/interface/acl/egress-acl-set"

		changes := []domain.ChangeRecord{{
			Path: domain.NewPath("openconfig-interfaces:interfaces", "interface[eth1]", "config", "enabled"),
			Type: domain.ChangeModified,
		}}

		deps := matcher.Match(changes, []domain.ReferenceEdge{ingressACLEdge(), egress})
		if len(deps) != 2 {
			t.Errorf("expected 2 dependencies, got %d", len(deps))
		}
	})
}
