package repositories

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category scoped to a household.
	FindCategoryByID(ctx context.Context, householdID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all of a household's categories ordered by
	// sort order, then name.
	ListCategories(ctx context.Context, householdID string) ([]domain.Category, error)

	// ListCategoryIDs returns the set of existing category ids for a
	// household. Used for broken-rule detection at rule-read time.
	ListCategoryIDs(ctx context.Context, householdID string) (map[string]bool, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
