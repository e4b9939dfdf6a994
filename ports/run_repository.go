package ports

import (
	"context"
	"time"

	"dredge/domain/core"
	"dredge/domain/sim"
)

// RunRecord is the persisted summary of a completed simulation run. Only the
// aggregate survives; per-trial datasets are discarded by design.
type RunRecord struct {
	ID           core.RunID `db:"id" json:"id"`
	Seed         int64      `db:"seed" json:"seed"`
	Trials       int        `db:"trials" json:"trials"`
	Observations int        `db:"observations" json:"observations"`
	Covariates   int        `db:"covariates" json:"covariates"`
	Alpha        float64    `db:"alpha" json:"alpha"`
	FlaggedCount int        `db:"flagged_count" json:"flagged_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// NewRunRecord builds a persistable record from a completed run.
func NewRunRecord(result *sim.RunResult) RunRecord {
	return RunRecord{
		ID:           result.RunID,
		Seed:         result.Config.Seed,
		Trials:       result.Config.Trials,
		Observations: result.Config.Observations,
		Covariates:   result.Config.Covariates,
		Alpha:        result.Config.Alpha,
		FlaggedCount: result.FlaggedCount(),
		CreatedAt:    result.StartedAt,
	}
}

// Fraction returns the proportion of flagged trials in the record.
func (r RunRecord) Fraction() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.FlaggedCount) / float64(r.Trials)
}

// RunRepositoryPort persists run summaries for later inspection.
type RunRepositoryPort interface {
	Save(ctx context.Context, record RunRecord) error
	GetByID(ctx context.Context, id core.RunID) (*RunRecord, error)
	ListRecent(ctx context.Context, limit int) ([]RunRecord, error)
}
