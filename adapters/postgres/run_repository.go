package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"dredge/domain/core"
	"dredge/ports"
)

// RunRepository persists completed run summaries in Postgres.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Connect opens a Postgres connection for the repository.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the runs table when it does not exist yet.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS simulation_runs (
			id UUID PRIMARY KEY,
			seed BIGINT NOT NULL,
			trials INT NOT NULL,
			observations INT NOT NULL,
			covariates INT NOT NULL,
			alpha DOUBLE PRECISION NOT NULL,
			flagged_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure simulation_runs schema: %w", err)
	}
	return nil
}

// Save stores a run summary.
func (r *RunRepository) Save(ctx context.Context, record ports.RunRecord) error {
	query := `
		INSERT INTO simulation_runs (id, seed, trials, observations, covariates, alpha, flagged_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(),
		record.Seed,
		record.Trials,
		record.Observations,
		record.Covariates,
		record.Alpha,
		record.FlaggedCount,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", record.ID, err)
	}
	return nil
}

// GetByID retrieves a run summary by its identifier.
func (r *RunRepository) GetByID(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	query := `
		SELECT id, seed, trials, observations, covariates, alpha, flagged_count, created_at
		FROM simulation_runs
		WHERE id = $1`

	var record ports.RunRecord
	if err := r.db.GetContext(ctx, &record, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("run", id.String())
		}
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &record, nil
}

// ListRecent returns the most recent run summaries, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	query := `
		SELECT id, seed, trials, observations, covariates, alpha, flagged_count, created_at
		FROM simulation_runs
		ORDER BY created_at DESC
		LIMIT $1`

	records := []ports.RunRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}
