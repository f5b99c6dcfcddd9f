package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"netimpact/internal/analysis"
	"netimpact/internal/domain"
)

// ErrNotFound is returned when a requested snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Snapshot is one collected device configuration.
type Snapshot struct {
	ID      int64        `json:"id"`
	Device  string       `json:"device"`
	Source  string       `json:"source,omitempty"`
	Config  *domain.Tree `json:"config"`
	TakenAt time.Time    `json:"taken_at"`
}

// AnalysisRun is one recorded analysis: summary counts for listing, plus
// the full serialized result for later inspection.
type AnalysisRun struct {
	ID              int64           `json:"id"`
	Device          string          `json:"device"`
	ChangeCount     int             `json:"change_count"`
	DependencyCount int             `json:"dependency_count"`
	ObjectCount     int             `json:"object_count"`
	Result          json.RawMessage `json:"result,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewRun builds an AnalysisRun from an analysis result.
func NewRun(device string, result *analysis.Result) (*AnalysisRun, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis result: %w", err)
	}
	return &AnalysisRun{
		Device:          device,
		ChangeCount:     len(result.Changes),
		DependencyCount: len(result.Dependencies),
		ObjectCount:     result.Report.ObjectsChanged,
		Result:          data,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// Repository defines the interface for snapshot and run persistence.
type Repository interface {
	// SaveSnapshot stores a configuration snapshot and sets its ID.
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error

	// LatestSnapshot returns the newest snapshot for a device, or
	// ErrNotFound.
	LatestSnapshot(ctx context.Context, device string) (*Snapshot, error)

	// ListDevices returns every device with at least one snapshot.
	ListDevices(ctx context.Context) ([]string, error)

	// SaveRun records an analysis run and sets its ID.
	SaveRun(ctx context.Context, run *AnalysisRun) error

	// ListRuns returns the most recent runs for a device, newest first.
	// A zero limit means no limit.
	ListRuns(ctx context.Context, device string, limit int) ([]AnalysisRun, error)

	// Close releases resources.
	Close() error
}
