package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	"github.com/hfa-project/home_finance_app/internal/models"
	"github.com/hfa-project/home_finance_app/internal/utils/mapping"
)

type PgxSyncJobRepository struct {
	BaseRepository
}

// newPgxSyncJobRepository creates a new repository for the sync job audit trail.
func newPgxSyncJobRepository(pool *pgxpool.Pool) portsrepo.SyncJobRepositoryFacade {
	return &PgxSyncJobRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SyncJobRepositoryFacade = (*PgxSyncJobRepository)(nil)

const syncJobColumns = `sync_job_id, household_id, connection_id, status, started_at, completed_at, transactions_found, transactions_new, error_message`

func scanSyncJob(row pgx.CollectableRow) (models.SyncJob, error) {
	var job models.SyncJob
	err := row.Scan(
		&job.SyncJobID,
		&job.HouseholdID,
		&job.ConnectionID,
		&job.Status,
		&job.StartedAt,
		&job.CompletedAt,
		&job.TransactionsFound,
		&job.TransactionsNew,
		&job.ErrorMessage,
	)
	return job, err
}

// CreateSyncJob appends a new job row.
func (r *PgxSyncJobRepository) CreateSyncJob(ctx context.Context, job domain.SyncJob) error {
	model := mapping.ToModelSyncJob(job)

	query := `
		INSERT INTO sync_jobs (` + syncJobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		model.SyncJobID,
		model.HouseholdID,
		model.ConnectionID,
		model.Status,
		model.StartedAt,
		model.CompletedAt,
		model.TransactionsFound,
		model.TransactionsNew,
		model.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to create sync job %s: %w", model.SyncJobID, err)
	}
	return nil
}

// UpdateSyncJob moves a job through its state machine. Rows are append-only
// in the sense that terminal rows are never deleted; status, counts and the
// completion timestamp are filled in as the attempt progresses.
func (r *PgxSyncJobRepository) UpdateSyncJob(ctx context.Context, syncJobID string, status domain.SyncJobStatus, found, inserted int, errorMessage string, completedAt *time.Time) error {
	query := `
		UPDATE sync_jobs
		SET status = $2, transactions_found = $3, transactions_new = $4, error_message = $5, completed_at = $6
		WHERE sync_job_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, syncJobID, string(status), found, inserted, errorMessage, completedAt)
	if err != nil {
		return fmt.Errorf("failed to update sync job %s: %w", syncJobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListSyncJobsByConnection retrieves a connection's sync jobs, newest first.
func (r *PgxSyncJobRepository) ListSyncJobsByConnection(ctx context.Context, householdID, connectionID string, limit int) ([]domain.SyncJob, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + syncJobColumns + `
		FROM sync_jobs
		WHERE household_id = $1 AND connection_id = $2
		ORDER BY started_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, connectionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync jobs: %w", err)
	}
	defer rows.Close()

	modelJobs, err := pgx.CollectRows(rows, scanSyncJob)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sync jobs: %w", err)
	}
	return mapping.ToDomainSyncJobSlice(modelJobs), nil
}
