package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelHousehold converts a domain Household to a model Household
func ToModelHousehold(d domain.Household) models.Household {
	return models.Household{
		HouseholdID:      d.HouseholdID,
		Name:             d.Name,
		BaseCurrencyCode: d.BaseCurrencyCode,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHousehold converts a model Household to a domain Household
func ToDomainHousehold(m models.Household) domain.Household {
	return domain.Household{
		HouseholdID:      m.HouseholdID,
		Name:             m.Name,
		BaseCurrencyCode: m.BaseCurrencyCode,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
