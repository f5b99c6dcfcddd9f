package diff

import "netimpact/internal/domain"

// Summary aggregates change counts for reporting.
type Summary struct {
	Total    int `json:"total"`
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`

	// Sections lists top-level sections in the order first changed;
	// BySection maps each to the change descriptions within it.
	Sections  []string            `json:"sections"`
	BySection map[string][]string `json:"by_section"`
}

// Summarize builds a Summary from a change list.
func Summarize(changes []domain.ChangeRecord) Summary {
	summary := Summary{
		Total:     len(changes),
		BySection: make(map[string][]string),
	}

	for _, change := range changes {
		switch change.Type {
		case domain.ChangeAdded:
			summary.Added++
		case domain.ChangeModified:
			summary.Modified++
		case domain.ChangeDeleted:
			summary.Deleted++
		}

		section := change.Path.First()
		if _, seen := summary.BySection[section]; !seen {
			summary.Sections = append(summary.Sections, section)
		}
		summary.BySection[section] = append(summary.BySection[section], change.Description)
	}

	return summary
}
