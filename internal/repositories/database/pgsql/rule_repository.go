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

type PgxRuleRepository struct {
	BaseRepository
}

// newPgxRuleRepository creates a new repository for category rules.
func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

const ruleColumns = `rule_id, household_id, type, pattern, target_category_id, priority, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanRule(row pgx.CollectableRow) (models.CategoryRule, error) {
	var rule models.CategoryRule
	err := row.Scan(
		&rule.RuleID,
		&rule.HouseholdID,
		&rule.Type,
		&rule.Pattern,
		&rule.TargetCategoryID,
		&rule.Priority,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.CreatedBy,
		&rule.LastUpdatedAt,
		&rule.LastUpdatedBy,
	)
	return rule, err
}

// SaveRule inserts a new rule.
func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.CategoryRule) error {
	model := mapping.ToModelCategoryRule(rule)

	query := `
		INSERT INTO category_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		model.RuleID,
		model.HouseholdID,
		model.Type,
		model.Pattern,
		model.TargetCategoryID,
		model.Priority,
		model.IsActive,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rule %s: %w", model.RuleID, err)
	}
	return nil
}

// FindRuleByID retrieves a rule scoped to a household.
func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, householdID, ruleID string) (*domain.CategoryRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM category_rules
		WHERE household_id = $1 AND rule_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rule %s: %w", ruleID, err)
	}
	model, err := pgx.CollectOneRow(rows, scanRule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleID, err)
	}

	domainRule := mapping.ToDomainCategoryRule(model)
	return &domainRule, nil
}

// ListRules retrieves a household's rules in evaluation order: priority
// descending, then creation time descending.
func (r *PgxRuleRepository) ListRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM category_rules
		WHERE household_id = $1
		ORDER BY priority DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	modelRules, err := pgx.CollectRows(rows, scanRule)
	if err != nil {
		return nil, fmt.Errorf("failed to scan rules: %w", err)
	}
	return mapping.ToDomainCategoryRuleSlice(modelRules), nil
}

// DeleteRules removes the given rules. Ids outside the household simply do
// not match the WHERE clause, so they are silent no-ops.
func (r *PgxRuleRepository) DeleteRules(ctx context.Context, householdID string, ruleIDs []string) (int, error) {
	if len(ruleIDs) == 0 {
		return 0, nil
	}
	query := `DELETE FROM category_rules WHERE household_id = $1 AND rule_id = ANY($2);`
	cmdTag, err := r.Pool.Exec(ctx, query, householdID, ruleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rules: %w", err)
	}
	return int(cmdTag.RowsAffected()), nil
}

// SetRulesActive toggles the active flag on the given rules, with the same
// out-of-household no-op semantics as DeleteRules.
func (r *PgxRuleRepository) SetRulesActive(ctx context.Context, householdID string, ruleIDs []string, active bool) (int, error) {
	if len(ruleIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE category_rules
		SET is_active = $3, last_updated_at = now()
		WHERE household_id = $1 AND rule_id = ANY($2);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, householdID, ruleIDs, active)
	if err != nil {
		return 0, fmt.Errorf("failed to toggle rules: %w", err)
	}
	return int(cmdTag.RowsAffected()), nil
}
