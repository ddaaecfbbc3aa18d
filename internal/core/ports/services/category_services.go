package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategory retrieves a category scoped to a household.
	GetCategory(ctx context.Context, householdID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all of a household's categories.
	ListCategories(ctx context.Context, householdID string) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category, enforcing the single-level
	// nesting and parent/child type invariants.
	CreateCategory(ctx context.Context, householdID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
}

// CategorySvcFacade combines all category service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
