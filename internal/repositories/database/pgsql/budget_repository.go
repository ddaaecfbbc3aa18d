package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	"github.com/hfa-project/home_finance_app/internal/models"
	"github.com/hfa-project/home_finance_app/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budgets.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, household_id, category_id, month, planned_amount, limit_amount, limit_type, alert_threshold, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.CollectableRow) (models.Budget, error) {
	var budget models.Budget
	err := row.Scan(
		&budget.BudgetID,
		&budget.HouseholdID,
		&budget.CategoryID,
		&budget.Month,
		&budget.PlannedAmount,
		&budget.LimitAmount,
		&budget.LimitType,
		&budget.AlertThreshold,
		&budget.CreatedAt,
		&budget.CreatedBy,
		&budget.LastUpdatedAt,
		&budget.LastUpdatedBy,
	)
	return budget, err
}

// UpsertBudget inserts or replaces the budget for its
// (household, category, month) key.
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	model := mapping.ToModelBudget(budget)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (household_id, category_id, month) DO UPDATE SET
			planned_amount = EXCLUDED.planned_amount,
			limit_amount = EXCLUDED.limit_amount,
			limit_type = EXCLUDED.limit_type,
			alert_threshold = EXCLUDED.alert_threshold,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		model.BudgetID,
		model.HouseholdID,
		model.CategoryID,
		model.Month,
		model.PlannedAmount,
		model.LimitAmount,
		model.LimitType,
		model.AlertThreshold,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget %s: %w", model.BudgetID, err)
	}
	return nil
}

// FindBudget retrieves the budget for one (household, category, month).
func (r *PgxBudgetRepository) FindBudget(ctx context.Context, householdID, categoryID, month string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE household_id = $1 AND category_id = $2 AND month = $3;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, categoryID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	model, err := pgx.CollectOneRow(rows, scanBudget)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget for category %s month %s: %w", categoryID, month, err)
	}

	domainBudget := mapping.ToDomainBudget(model)
	return &domainBudget, nil
}

// ListBudgetsByMonth retrieves all budgets of a household for a month,
// ordered by category for stable output.
func (r *PgxBudgetRepository) ListBudgetsByMonth(ctx context.Context, householdID, month string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE household_id = $1 AND month = $2
		ORDER BY category_id;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	modelBudgets, err := pgx.CollectRows(rows, scanBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}
	return mapping.ToDomainBudgetSlice(modelBudgets), nil
}
