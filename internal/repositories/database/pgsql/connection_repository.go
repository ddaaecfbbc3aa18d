package pgsql

import (
	"context"
	"errors"
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

type PgxConnectionRepository struct {
	BaseRepository
}

// newPgxConnectionRepository creates a new repository for bank connections.
func newPgxConnectionRepository(pool *pgxpool.Pool) portsrepo.ConnectionRepositoryFacade {
	return &PgxConnectionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ConnectionRepositoryFacade = (*PgxConnectionRepository)(nil)

const connectionColumns = `connection_id, household_id, provider, name, encrypted_credentials, is_active, last_sync_at, last_sync_status, last_sync_error, created_at, created_by, last_updated_at, last_updated_by`

func scanConnection(row pgx.CollectableRow) (models.Connection, error) {
	var conn models.Connection
	err := row.Scan(
		&conn.ConnectionID,
		&conn.HouseholdID,
		&conn.Provider,
		&conn.Name,
		&conn.EncryptedCredentials,
		&conn.IsActive,
		&conn.LastSyncAt,
		&conn.LastSyncStatus,
		&conn.LastSyncError,
		&conn.CreatedAt,
		&conn.CreatedBy,
		&conn.LastUpdatedAt,
		&conn.LastUpdatedBy,
	)
	return conn, err
}

// SaveConnection inserts a new connection.
func (r *PgxConnectionRepository) SaveConnection(ctx context.Context, connection domain.Connection) error {
	model := mapping.ToModelConnection(connection)

	query := `
		INSERT INTO connections (` + connectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.Pool.Exec(ctx, query,
		model.ConnectionID,
		model.HouseholdID,
		model.Provider,
		model.Name,
		model.EncryptedCredentials,
		model.IsActive,
		model.LastSyncAt,
		model.LastSyncStatus,
		model.LastSyncError,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save connection %s: %w", model.ConnectionID, err)
	}
	return nil
}

// FindConnectionByID retrieves a connection scoped to a household.
func (r *PgxConnectionRepository) FindConnectionByID(ctx context.Context, householdID, connectionID string) (*domain.Connection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM connections
		WHERE household_id = $1 AND connection_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query connection %s: %w", connectionID, err)
	}
	model, err := pgx.CollectOneRow(rows, scanConnection)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find connection %s: %w", connectionID, err)
	}

	domainConn := mapping.ToDomainConnection(model)
	return &domainConn, nil
}

// ListConnections retrieves a household's connections, oldest first.
func (r *PgxConnectionRepository) ListConnections(ctx context.Context, householdID string, activeOnly bool) ([]domain.Connection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM connections
		WHERE household_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	modelConns, err := pgx.CollectRows(rows, scanConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan connections: %w", err)
	}
	return mapping.ToDomainConnectionSlice(modelConns), nil
}

// UpdateSyncOutcome records the outcome of the latest sync attempt.
func (r *PgxConnectionRepository) UpdateSyncOutcome(ctx context.Context, householdID, connectionID string, status domain.ConnectionSyncStatus, errorMessage string, syncedAt time.Time) error {
	query := `
		UPDATE connections
		SET last_sync_at = $3, last_sync_status = $4, last_sync_error = $5, last_updated_at = $3
		WHERE household_id = $1 AND connection_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, householdID, connectionID, syncedAt, string(status), errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update sync outcome for connection %s: %w", connectionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetConnectionActive toggles a connection's active flag.
func (r *PgxConnectionRepository) SetConnectionActive(ctx context.Context, householdID, connectionID string, active bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE connections
		SET is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE household_id = $1 AND connection_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, householdID, connectionID, active, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to toggle connection %s: %w", connectionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
