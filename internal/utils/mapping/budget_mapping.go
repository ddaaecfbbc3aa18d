package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	var limitType *string
	if d.LimitType != nil {
		lt := string(*d.LimitType)
		limitType = &lt
	}
	return models.Budget{
		BudgetID:       d.BudgetID,
		HouseholdID:    d.HouseholdID,
		CategoryID:     d.CategoryID,
		Month:          d.Month,
		PlannedAmount:  d.PlannedAmount,
		LimitAmount:    d.LimitAmount,
		LimitType:      limitType,
		AlertThreshold: d.AlertThreshold,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	var limitType *domain.LimitType
	if m.LimitType != nil {
		lt := domain.LimitType(*m.LimitType)
		limitType = &lt
	}
	return domain.Budget{
		BudgetID:       m.BudgetID,
		HouseholdID:    m.HouseholdID,
		CategoryID:     m.CategoryID,
		Month:          m.Month,
		PlannedAmount:  m.PlannedAmount,
		LimitAmount:    m.LimitAmount,
		LimitType:      limitType,
		AlertThreshold: m.AlertThreshold,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to domain form
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
