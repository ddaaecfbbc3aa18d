package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

// ConnectionReaderSvc defines read operations for bank connections
type ConnectionReaderSvc interface {
	// GetConnection retrieves a connection scoped to a household.
	GetConnection(ctx context.Context, householdID, connectionID string) (*domain.Connection, error)

	// ListConnections retrieves a household's connections.
	ListConnections(ctx context.Context, householdID string) ([]domain.Connection, error)
}

// ConnectionWriterSvc defines write operations for bank connections
type ConnectionWriterSvc interface {
	// CreateConnection validates the credential payload against the
	// provider's shape, encrypts it, and persists the connection. The
	// plaintext credentials are discarded before this returns.
	CreateConnection(ctx context.Context, householdID string, req dto.CreateConnectionRequest, creatorUserID string) (*domain.Connection, error)

	// SetConnectionActive toggles a connection's active flag.
	SetConnectionActive(ctx context.Context, householdID, connectionID string, active bool, actorUserID string) error
}

// ConnectionSvcFacade combines all connection service interfaces
type ConnectionSvcFacade interface {
	ConnectionReaderSvc
	ConnectionWriterSvc
}
