package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:       d.CategoryID,
		HouseholdID:      d.HouseholdID,
		Name:             d.Name,
		Type:             string(d.Type),
		ParentCategoryID: d.ParentCategoryID,
		Icon:             d.Icon,
		SortOrder:        d.SortOrder,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:       m.CategoryID,
		HouseholdID:      m.HouseholdID,
		Name:             m.Name,
		Type:             domain.CategoryType(m.Type),
		ParentCategoryID: m.ParentCategoryID,
		Icon:             m.Icon,
		SortOrder:        m.SortOrder,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain form
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
