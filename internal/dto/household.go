package dto

import "github.com/hfa-project/home_finance_app/internal/core/domain"

// CreateHouseholdRequest defines the payload for creating a household.
type CreateHouseholdRequest struct {
	Name             string `json:"name" binding:"required"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
}

// HouseholdResponse defines the household representation returned to clients.
type HouseholdResponse struct {
	HouseholdID      string `json:"householdID"`
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	IsActive         bool   `json:"isActive"`
}

// ToHouseholdResponse maps a domain Household to its response form.
func ToHouseholdResponse(h *domain.Household) HouseholdResponse {
	return HouseholdResponse{
		HouseholdID:      h.HouseholdID,
		Name:             h.Name,
		BaseCurrencyCode: h.BaseCurrencyCode,
		IsActive:         h.IsActive,
	}
}
