package repositories

import (
	"context"
	"time"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// SyncJobReader defines read operations for the sync job audit trail
type SyncJobReader interface {
	// ListSyncJobsByConnection retrieves a connection's sync jobs, newest
	// first, capped at limit.
	ListSyncJobsByConnection(ctx context.Context, householdID, connectionID string, limit int) ([]domain.SyncJob, error)
}

// SyncJobWriter defines write operations for the sync job audit trail.
// Jobs are append-only: a row transitions pending -> running -> terminal and
// is never deleted.
type SyncJobWriter interface {
	// CreateSyncJob appends a new job row.
	CreateSyncJob(ctx context.Context, job domain.SyncJob) error

	// UpdateSyncJob moves a job through its state machine, recording counts
	// and the completion timestamp on terminal states.
	UpdateSyncJob(ctx context.Context, syncJobID string, status domain.SyncJobStatus, found, inserted int, errorMessage string, completedAt *time.Time) error
}

// SyncJobRepositoryFacade combines all sync job repository interfaces
type SyncJobRepositoryFacade interface {
	SyncJobReader
	SyncJobWriter
}
