package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelCategoryRule converts a domain CategoryRule to a model CategoryRule
func ToModelCategoryRule(d domain.CategoryRule) models.CategoryRule {
	return models.CategoryRule{
		RuleID:           d.RuleID,
		HouseholdID:      d.HouseholdID,
		Type:             string(d.Type),
		Pattern:          d.Pattern,
		TargetCategoryID: d.TargetCategoryID,
		Priority:         d.Priority,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategoryRule converts a model CategoryRule to a domain CategoryRule
func ToDomainCategoryRule(m models.CategoryRule) domain.CategoryRule {
	return domain.CategoryRule{
		RuleID:           m.RuleID,
		HouseholdID:      m.HouseholdID,
		Type:             domain.RuleType(m.Type),
		Pattern:          m.Pattern,
		TargetCategoryID: m.TargetCategoryID,
		Priority:         m.Priority,
		IsActive:         m.IsActive,
		Broken:           m.Broken,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategoryRuleSlice converts a slice of model CategoryRules to domain form
func ToDomainCategoryRuleSlice(ms []models.CategoryRule) []domain.CategoryRule {
	ds := make([]domain.CategoryRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategoryRule(m)
	}
	return ds
}
