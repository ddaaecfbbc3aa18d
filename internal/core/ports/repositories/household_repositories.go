package repositories

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// HouseholdReader defines read operations for household data
type HouseholdReader interface {
	// FindHouseholdByID retrieves a household by id.
	FindHouseholdByID(ctx context.Context, householdID string) (*domain.Household, error)
}

// HouseholdWriter defines write operations for household data
type HouseholdWriter interface {
	// SaveHousehold persists a new household.
	SaveHousehold(ctx context.Context, household domain.Household) error
}

// HouseholdRepositoryFacade combines all household repository interfaces
type HouseholdRepositoryFacade interface {
	HouseholdReader
	HouseholdWriter
}
