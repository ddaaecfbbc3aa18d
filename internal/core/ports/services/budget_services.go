package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

// BudgetReaderSvc defines read/evaluation operations for budgets
type BudgetReaderSvc interface {
	// EvaluateMonth evaluates every budget of a household for the given
	// month against the actual spend.
	EvaluateMonth(ctx context.Context, householdID, month string) ([]domain.BudgetEvaluation, error)

	// ListAlerts returns the month's evaluations whose status is not ok,
	// preserving evaluation order.
	ListAlerts(ctx context.Context, householdID, month string) ([]domain.BudgetEvaluation, error)
}

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	// UpsertBudget creates or replaces the budget for one
	// (category, month).
	UpsertBudget(ctx context.Context, householdID string, req dto.UpsertBudgetRequest, actorUserID string) (*domain.Budget, error)

	// CopyMonth duplicates one month's budgets into another, skipping
	// categories already budgeted in the target month. Returns how many
	// budgets were created.
	CopyMonth(ctx context.Context, householdID, fromMonth, toMonth, actorUserID string) (int, error)
}

// BudgetSvcFacade combines all budget service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
