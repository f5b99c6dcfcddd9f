package analysis

import (
	"errors"
	"testing"

	"netimpact/internal/domain"
	"netimpact/internal/schema"
)

func testModel() *schema.Model {
	return &schema.Model{
		Name: "openconfig",
		Roots: []schema.Node{
			&schema.Container{
				Name: "acl",
				Children: []schema.Node{
					&schema.Container{
						Name: "acl-sets",
						Children: []schema.Node{
							&schema.List{
								Name: "acl-set",
								Key:  "name",
								Children: []schema.Node{
									&schema.Leaf{Name: "name", Type: "string"},
								},
							},
						},
					},
				},
			},
			&schema.Container{
				Name: "interfaces",
				Children: []schema.Node{
					&schema.List{
						Name: "interface",
						Key:  "name",
						Children: []schema.Node{
							&schema.Leaf{Name: "name", Type: "string"},
							&schema.Container{
								Name: "acl",
								Children: []schema.Node{
									&schema.LeafRef{
										Name:   "ingress-acl-set",
										Target: "../../../../acl/acl-sets/acl-set/name",
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

// TestAnalyzeACLApplication covers the signature use case: the ACL itself
// is unchanged, but an interface starts referencing it.
func TestAnalyzeACLApplication(t *testing.T) {
	current := tree(
		"openconfig-interfaces:interfaces", tree("interface", []any{
			tree("name", "eth0", "config", tree("mtu", int64(1500))),
			tree("name", "eth1", "config", tree("enabled", true)),
		}),
		"openconfig-acl:acl", tree("acl-sets", tree("acl-set", []any{
			tree("name", "USER_INBOUND_V4"),
		})),
	)
	proposed := tree(
		"openconfig-interfaces:interfaces", tree("interface", []any{
			tree("name", "eth0", "config", tree("mtu", int64(1500))),
			tree(
				"name", "eth1",
				"config", tree("enabled", true),
				"openconfig-acl:acl", tree(
					"ingress-acl-sets", tree("ingress-acl-set", []any{
						tree("set-name", "USER_INBOUND_V4"),
					}),
				),
			),
		}),
		"openconfig-acl:acl", tree("acl-sets", tree("acl-set", []any{
			tree("name", "USER_INBOUND_V4"),
		})),
	)

	analyzer := NewAnalyzer(testModel(), quietLogger())
	result, err := analyzer.Analyze(current, proposed)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if len(result.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(result.Changes))
	}
	if result.Changes[0].Type != domain.ChangeAdded {
		t.Errorf("expected added change, got %s", result.Changes[0].Type)
	}
	if !result.EdgesAvailable {
		t.Error("expected schema edges to be available")
	}
	if len(result.Dependencies) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(result.Dependencies))
	}
	dep := result.Dependencies[0]
	if dep.ResolvedIdentifier != "eth1" {
		t.Errorf("expected resolved identifier eth1, got %s", dep.ResolvedIdentifier)
	}
	if dep.Kind != domain.DependencyKindDirect || dep.Confidence != domain.ConfidenceSchemaVerified {
		t.Errorf("unexpected dependency metadata: kind=%s confidence=%s", dep.Kind, dep.Confidence)
	}

	impact := result.Report.Impact("Interface Configuration")
	if impact == nil {
		t.Fatal("missing interface group in report")
	}
	if impact.ChangeCount != 1 {
		t.Errorf("expected change_count 1, got %d", impact.ChangeCount)
	}
}

func TestAnalyzeRequiresProposed(t *testing.T) {
	analyzer := NewAnalyzer(testModel(), quietLogger())

	_, err := analyzer.Analyze(currentConfig(), nil)
	if err == nil {
		t.Fatal("expected error for missing proposed configuration")
	}
	if !errors.Is(err, ErrNoProposedConfig) {
		t.Errorf("expected ErrNoProposedConfig, got %v", err)
	}
}

// TestAnalyzeWithoutSchema exercises the fallback path: no model means no
// edges, zero dependencies, and a still well-formed report.
func TestAnalyzeWithoutSchema(t *testing.T) {
	analyzer := NewAnalyzer(nil, quietLogger())

	proposed := tree("openconfig-vlan:vlans", tree("vlan", []any{
		tree("vlan-id", int64(20), "config", tree("name", "DEV")),
	}))

	result, err := analyzer.Analyze(domain.NewTree(), proposed)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.EdgesAvailable {
		t.Error("expected no edges without a model")
	}
	if len(result.Dependencies) != 0 {
		t.Errorf("expected no dependencies, got %v", result.Dependencies)
	}
	if impact := result.Report.Impact("VLAN Configuration"); impact == nil {
		t.Error("changed object missing from report")
	} else if len(impact.Dependencies) != 0 {
		t.Errorf("expected empty dependency list, got %v", impact.Dependencies)
	}
	if result.ChangeSummary.Total != len(result.Changes) {
		t.Errorf("summary total %d does not match %d changes", result.ChangeSummary.Total, len(result.Changes))
	}
}
