package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

type householdService struct {
	BaseService
	householdRepo portsrepo.HouseholdRepositoryFacade
}

// NewHouseholdService creates the household service.
func NewHouseholdService(householdRepo portsrepo.HouseholdRepositoryFacade) portssvc.HouseholdSvcFacade {
	return &householdService{householdRepo: householdRepo}
}

var _ portssvc.HouseholdSvcFacade = (*householdService)(nil)

func (s *householdService) GetHousehold(ctx context.Context, householdID string) (*domain.Household, error) {
	household, err := s.householdRepo.FindHouseholdByID(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to find household: %w", err)
	}
	return household, nil
}

func (s *householdService) CreateHousehold(ctx context.Context, req dto.CreateHouseholdRequest, creatorUserID string) (*domain.Household, error) {
	now := time.Now()
	household := domain.Household{
		HouseholdID:      uuid.NewString(),
		Name:             req.Name,
		BaseCurrencyCode: req.BaseCurrencyCode,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.householdRepo.SaveHousehold(ctx, household); err != nil {
		return nil, fmt.Errorf("failed to save household: %w", err)
	}
	s.LogInfo(ctx, "Household created", slog.String("household_id", household.HouseholdID))
	return &household, nil
}
