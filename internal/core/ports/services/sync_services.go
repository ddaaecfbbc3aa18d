package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// SyncSvcFacade drives sync cycles and exposes the audit trail. This is the
// only interface the orchestrator presents to the trigger layer.
type SyncSvcFacade interface {
	// SyncCycle runs one sync cycle. With connectionID set, only that
	// connection is synced; otherwise every active connection of the
	// household. Per-connection failures are aggregated into the result;
	// only a configuration-level fault returns an error instead of a
	// result.
	SyncCycle(ctx context.Context, householdID string, connectionID *string) (*domain.SyncResult, error)

	// ListSyncJobs retrieves the append-only audit trail for a connection,
	// newest first.
	ListSyncJobs(ctx context.Context, householdID, connectionID string, limit int) ([]domain.SyncJob, error)

	// ActiveSyncs reports which of the household's connections have a sync
	// in flight right now.
	ActiveSyncs(householdID string) []string
}
