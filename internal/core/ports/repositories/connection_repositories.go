package repositories

import (
	"context"
	"time"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// ConnectionReader defines read operations for bank connections
type ConnectionReader interface {
	// FindConnectionByID retrieves a connection scoped to a household.
	FindConnectionByID(ctx context.Context, householdID, connectionID string) (*domain.Connection, error)

	// ListConnections retrieves a household's connections. With activeOnly
	// set, inactive connections are excluded.
	ListConnections(ctx context.Context, householdID string, activeOnly bool) ([]domain.Connection, error)
}

// ConnectionWriter defines write operations for bank connections
type ConnectionWriter interface {
	// SaveConnection persists a new connection.
	SaveConnection(ctx context.Context, connection domain.Connection) error

	// UpdateSyncOutcome records the outcome of the latest sync attempt on
	// the connection row.
	UpdateSyncOutcome(ctx context.Context, householdID, connectionID string, status domain.ConnectionSyncStatus, errorMessage string, syncedAt time.Time) error

	// SetConnectionActive toggles a connection's active flag.
	SetConnectionActive(ctx context.Context, householdID, connectionID string, active bool, updatedBy string, updatedAt time.Time) error
}

// ConnectionRepositoryFacade combines all connection repository interfaces
type ConnectionRepositoryFacade interface {
	ConnectionReader
	ConnectionWriter
}
