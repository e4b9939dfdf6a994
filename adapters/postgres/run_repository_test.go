package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dredge/domain/core"
	"dredge/ports"
)

func newMockRepo(t *testing.T) (*RunRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleRecord() ports.RunRecord {
	return ports.RunRecord{
		ID:           core.RunID("0190a1b2-0000-7000-8000-000000000001"),
		Seed:         12345,
		Trials:       1000,
		Observations: 1000,
		Covariates:   5,
		Alpha:        0.05,
		FlaggedCount: 412,
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRunRepository_Save(t *testing.T) {
	repo, mock := newMockRepo(t)
	record := sampleRecord()

	mock.ExpectExec("INSERT INTO simulation_runs").
		WithArgs(record.ID.String(), record.Seed, record.Trials, record.Observations,
			record.Covariates, record.Alpha, record.FlaggedCount, record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	record := sampleRecord()

	rows := sqlmock.NewRows([]string{
		"id", "seed", "trials", "observations", "covariates", "alpha", "flagged_count", "created_at",
	}).AddRow(record.ID.String(), record.Seed, record.Trials, record.Observations,
		record.Covariates, record.Alpha, record.FlaggedCount, record.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM simulation_runs").
		WithArgs(record.ID.String()).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, *got)
	assert.InDelta(t, 0.412, got.Fraction(), 1e-12)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM simulation_runs").
		WithArgs("0190a1b2-0000-7000-8000-00000000dead").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "seed", "trials", "observations", "covariates", "alpha", "flagged_count", "created_at",
		}))

	_, err := repo.GetByID(context.Background(), core.RunID("0190a1b2-0000-7000-8000-00000000dead"))
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestRunRepository_ListRecent(t *testing.T) {
	repo, mock := newMockRepo(t)
	record := sampleRecord()

	rows := sqlmock.NewRows([]string{
		"id", "seed", "trials", "observations", "covariates", "alpha", "flagged_count", "created_at",
	}).AddRow(record.ID.String(), record.Seed, record.Trials, record.Observations,
		record.Covariates, record.Alpha, record.FlaggedCount, record.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM simulation_runs ORDER BY created_at DESC").
		WithArgs(10).
		WillReturnRows(rows)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])
}

func TestRunRepository_EnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS simulation_runs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
