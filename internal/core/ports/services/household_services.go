package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

// HouseholdReaderSvc defines read operations for household data
type HouseholdReaderSvc interface {
	// GetHousehold retrieves a household by id.
	GetHousehold(ctx context.Context, householdID string) (*domain.Household, error)
}

// HouseholdWriterSvc defines write operations for household data
type HouseholdWriterSvc interface {
	// CreateHousehold persists a new household.
	CreateHousehold(ctx context.Context, req dto.CreateHouseholdRequest, creatorUserID string) (*domain.Household, error)
}

// HouseholdSvcFacade combines all household service interfaces
type HouseholdSvcFacade interface {
	HouseholdReaderSvc
	HouseholdWriterSvc
}
