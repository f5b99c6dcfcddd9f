// Package sqlite implements the repository interface on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"netimpact/internal/domain"
	"netimpact/internal/repository"
)

// Repository implements repository.Repository using SQLite.
type Repository struct {
	db *sql.DB
}

// New opens (creating if needed) a SQLite database at the given path and
// migrates the schema.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		config JSON NOT NULL,
		taken_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device TEXT NOT NULL,
		change_count INTEGER NOT NULL,
		dependency_count INTEGER NOT NULL,
		object_count INTEGER NOT NULL,
		result JSON NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_device ON snapshots(device, taken_at);
	CREATE INDEX IF NOT EXISTS idx_runs_device ON runs(device, created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveSnapshot stores a configuration snapshot and sets its ID. A zero
// TakenAt is filled with the current time.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot *repository.Snapshot) error {
	if snapshot.Device == "" {
		return fmt.Errorf("snapshot requires a device name")
	}
	if snapshot.TakenAt.IsZero() {
		snapshot.TakenAt = time.Now().UTC()
	}

	config, err := json.Marshal(snapshot.Config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (device, source, config, taken_at)
		VALUES (?, ?, ?, ?)
	`, snapshot.Device, snapshot.Source, config, snapshot.TakenAt)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	snapshot.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read snapshot id: %w", err)
	}
	return nil
}

// LatestSnapshot returns the newest snapshot for a device.
func (r *Repository) LatestSnapshot(ctx context.Context, device string) (*repository.Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, device, source, config, taken_at
		FROM snapshots
		WHERE device = ?
		ORDER BY taken_at DESC, id DESC
		LIMIT 1
	`, device)

	var (
		snapshot repository.Snapshot
		config   []byte
	)
	if err := row.Scan(&snapshot.ID, &snapshot.Device, &snapshot.Source, &config, &snapshot.TakenAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no snapshot for device %s: %w", device, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snapshot.Config = domain.NewTree()
	if err := json.Unmarshal(config, snapshot.Config); err != nil {
		return nil, fmt.Errorf("failed to deserialize config: %w", err)
	}
	return &snapshot, nil
}

// ListDevices returns every device with at least one snapshot.
func (r *Repository) ListDevices(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT device FROM snapshots ORDER BY device
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []string
	for rows.Next() {
		var device string
		if err := rows.Scan(&device); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, device)
	}
	return devices, rows.Err()
}

// SaveRun records an analysis run and sets its ID.
func (r *Repository) SaveRun(ctx context.Context, run *repository.AnalysisRun) error {
	if run.Device == "" {
		return fmt.Errorf("run requires a device name")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (device, change_count, dependency_count, object_count, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.Device, run.ChangeCount, run.DependencyCount, run.ObjectCount, []byte(run.Result), run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs for a device, newest first.
func (r *Repository) ListRuns(ctx context.Context, device string, limit int) ([]repository.AnalysisRun, error) {
	query := `
		SELECT id, device, change_count, dependency_count, object_count, result, created_at
		FROM runs
		WHERE device = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []any{device}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []repository.AnalysisRun
	for rows.Next() {
		var (
			run    repository.AnalysisRun
			result []byte
		)
		if err := rows.Scan(&run.ID, &run.Device, &run.ChangeCount, &run.DependencyCount,
			&run.ObjectCount, &result, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Result = json.RawMessage(result)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
