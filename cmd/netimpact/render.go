package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"netimpact/internal/analysis"
	"netimpact/internal/domain"
)

// renderJSON writes the full result as indented JSON.
func renderJSON(w io.Writer, result *analysis.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// renderResult writes the human-readable report: the change list, the
// resolved dependencies, and the per-object impact summary.
func renderResult(w io.Writer, result *analysis.Result) error {
	if len(result.Changes) == 0 {
		fmt.Fprintln(w, "No configuration changes detected.")
		return nil
	}

	fmt.Fprintf(w, "Configuration changes (%d):\n", len(result.Changes))
	for _, change := range result.Changes {
		fmt.Fprintf(w, "  %s %s\n", changeMarker(change.Type), change.Description)
	}
	fmt.Fprintln(w)

	if !result.EdgesAvailable {
		fmt.Fprintln(w, "No schema reference edges available; dependency analysis skipped.")
	} else if len(result.Dependencies) == 0 {
		fmt.Fprintln(w, "No schema-driven dependencies found.")
	} else {
		fmt.Fprintf(w, "Dependencies (%d):\n", len(result.Dependencies))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  CHANGE\tREFERENCE\tOBJECT\tCONFIDENCE")
		for _, dep := range result.Dependencies {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				dep.ChangePath, dep.SourcePath, dep.ResolvedIdentifier, dep.Confidence)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Impact by object (%d changed, %d with downstream impacts):\n",
		result.Report.ObjectsChanged, result.Report.ObjectsWithImpacts)
	for _, impact := range result.Report.Impacts {
		fmt.Fprintf(w, "  %s: %d change(s)\n", impact.Object, impact.ChangeCount)
		if len(impact.AllIdentifiers) > 0 {
			fmt.Fprintf(w, "    objects: %s\n", strings.Join(impact.AllIdentifiers, ", "))
		}
		for _, dep := range impact.Dependencies {
			fmt.Fprintf(w, "    impacts %s via %s\n", dep.ResolvedIdentifier, dep.SourcePath)
		}
	}
	return nil
}

func changeMarker(changeType domain.ChangeType) string {
	switch changeType {
	case domain.ChangeAdded:
		return "+"
	case domain.ChangeDeleted:
		return "-"
	default:
		return "~"
	}
}
