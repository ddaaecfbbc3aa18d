package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	"github.com/hfa-project/home_finance_app/internal/models"
	"github.com/hfa-project/home_finance_app/internal/utils/mapping"
)

type PgxHouseholdRepository struct {
	BaseRepository
}

// newPgxHouseholdRepository creates a new repository for household data.
func newPgxHouseholdRepository(pool *pgxpool.Pool) portsrepo.HouseholdRepositoryFacade {
	return &PgxHouseholdRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HouseholdRepositoryFacade = (*PgxHouseholdRepository)(nil)

// SaveHousehold inserts a new household.
func (r *PgxHouseholdRepository) SaveHousehold(ctx context.Context, household domain.Household) error {
	model := mapping.ToModelHousehold(household)

	query := `
		INSERT INTO households (household_id, name, base_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		model.HouseholdID,
		model.Name,
		model.BaseCurrencyCode,
		model.IsActive,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save household %s: %w", model.HouseholdID, err)
	}
	return nil
}

// FindHouseholdByID retrieves a household by its id.
func (r *PgxHouseholdRepository) FindHouseholdByID(ctx context.Context, householdID string) (*domain.Household, error) {
	query := `
		SELECT household_id, name, base_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM households
		WHERE household_id = $1;
	`
	var model models.Household
	err := r.Pool.QueryRow(ctx, query, householdID).Scan(
		&model.HouseholdID,
		&model.Name,
		&model.BaseCurrencyCode,
		&model.IsActive,
		&model.CreatedAt,
		&model.CreatedBy,
		&model.LastUpdatedAt,
		&model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find household %s: %w", householdID, err)
	}

	domainHousehold := mapping.ToDomainHousehold(model)
	return &domainHousehold, nil
}
