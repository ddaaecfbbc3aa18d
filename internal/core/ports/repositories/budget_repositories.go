package repositories

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// BudgetReader defines read operations for budgets
type BudgetReader interface {
	// FindBudget retrieves the budget for one (household, category, month).
	FindBudget(ctx context.Context, householdID, categoryID, month string) (*domain.Budget, error)

	// ListBudgetsByMonth retrieves all budgets of a household for a month.
	ListBudgetsByMonth(ctx context.Context, householdID, month string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets
type BudgetWriter interface {
	// UpsertBudget inserts or updates the budget for its
	// (household, category, month) key.
	UpsertBudget(ctx context.Context, budget domain.Budget) error
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
