package analysis

import (
	"errors"
	"log"

	"netimpact/internal/diff"
	"netimpact/internal/domain"
	"netimpact/internal/schema"
)

// ErrNoProposedConfig is returned when analysis is requested without a
// proposed configuration. No meaningful analysis is possible in that case,
// so it surfaces as a hard failure rather than an empty result.
var ErrNoProposedConfig = errors.New("no proposed configuration to analyze")

// Result is the full outcome of one analysis run. A successful run with an
// empty schema still produces a well-formed report; EdgesAvailable lets the
// presentation layer distinguish "no dependencies found" from "no schema to
// find them with".
type Result struct {
	Changes        []domain.ChangeRecord     `json:"changes"`
	ChangeSummary  diff.Summary              `json:"change_summary"`
	Dependencies   []domain.DependencyRecord `json:"dependencies"`
	Report         *domain.ImpactReport      `json:"report"`
	EdgesAvailable bool                      `json:"edges_available"`
}

// Analyzer runs the full pipeline: diff the trees, match changes against
// schema reference edges, aggregate into a per-object impact report. One
// analyzer is safe for concurrent use as long as callers supply their own
// trees per call.
type Analyzer struct {
	model      *schema.Model
	engine     *diff.Engine
	matcher    *Matcher
	aggregator *Aggregator
	logger     *log.Logger
}

// NewAnalyzer creates an analyzer for a schema model. A nil model is
// accepted: the analysis then proceeds with no reference edges and reports
// zero dependencies. Diff options are forwarded to the diff engine.
func NewAnalyzer(model *schema.Model, logger *log.Logger, diffOpts ...diff.Option) *Analyzer {
	if logger == nil {
		logger = log.Default()
	}
	diffOpts = append([]diff.Option{diff.WithLogger(logger)}, diffOpts...)
	return &Analyzer{
		model:      model,
		engine:     diff.NewEngine(diffOpts...),
		matcher:    NewMatcher(logger),
		aggregator: NewAggregator(logger),
		logger:     logger,
	}
}

// Analyze compares the proposed configuration against the current one and
// resolves the impact of every detected change. A nil current tree is
// treated as an empty configuration; a nil proposed tree is a caller error.
func (a *Analyzer) Analyze(current, proposed *domain.Tree) (*Result, error) {
	if proposed == nil {
		return nil, ErrNoProposedConfig
	}

	edges := schema.References(a.model, a.logger)
	changes := a.engine.Diff(current, proposed)
	deps := a.matcher.Match(changes, edges)
	report := a.aggregator.Aggregate(changes, deps, current)

	a.logger.Printf("analysis: %d changes, %d dependencies, %d objects",
		len(changes), len(deps), report.ObjectsChanged)

	return &Result{
		Changes:        changes,
		ChangeSummary:  diff.Summarize(changes),
		Dependencies:   deps,
		Report:         report,
		EdgesAvailable: len(edges) > 0,
	}, nil
}
