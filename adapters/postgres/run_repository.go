package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gosegment/domain/core"
	"gosegment/domain/run"
	"gosegment/domain/segment"
	"gosegment/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// runRepository implements the RunStore interface over Postgres
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository connects to Postgres and ensures the result tables exist
func NewRunRepository(databaseURL string) (ports.RunStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &runRepository{db: db}
	if err := repo.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *runRepository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS segmentation_runs (
		run_id          TEXT PRIMARY KEY,
		source_file     TEXT NOT NULL,
		k               INT NOT NULL,
		seed            BIGINT NOT NULL,
		restarts        INT NOT NULL,
		rows_loaded     INT NOT NULL,
		rows_retained   INT NOT NULL,
		rows_dropped    INT NOT NULL,
		mean_silhouette DOUBLE PRECISION NOT NULL,
		code_version    TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS cluster_summaries (
		run_id  TEXT NOT NULL REFERENCES segmentation_runs(run_id),
		label   INT NOT NULL,
		means   JSONB NOT NULL,
		count   INT NOT NULL,
		PRIMARY KEY (run_id, label)
	);`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure result schema: %w", err)
	}
	return nil
}

// SaveManifest inserts the run manifest
func (r *runRepository) SaveManifest(ctx context.Context, m *run.Manifest) error {
	query := `INSERT INTO segmentation_runs (
		run_id, source_file, k, seed, restarts,
		rows_loaded, rows_retained, rows_dropped, mean_silhouette, code_version, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		m.RunID.String(), m.SourceFile, m.K, m.Seed, m.Restarts,
		m.RowsLoaded, m.RowsRetained, m.RowsDropped, m.MeanSilhouette, m.CodeVersion,
		m.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run manifest: %w", err)
	}
	return nil
}

// SaveSummaries inserts one row per cluster for the run
func (r *runRepository) SaveSummaries(ctx context.Context, runID core.RunID, summaries []segment.ClusterSummary) error {
	query := `INSERT INTO cluster_summaries (run_id, label, means, count)
	VALUES ($1, $2, $3, $4)`

	for _, s := range summaries {
		meansJSON, err := json.Marshal(s.Means)
		if err != nil {
			return fmt.Errorf("failed to marshal means for cluster %d: %w", s.Label, err)
		}
		if _, err := r.db.ExecContext(ctx, query, runID.String(), s.Label, meansJSON, s.Count); err != nil {
			return fmt.Errorf("failed to save summary for cluster %d: %w", s.Label, err)
		}
	}
	return nil
}

// Close releases the database connection
func (r *runRepository) Close() error {
	return r.db.Close()
}
