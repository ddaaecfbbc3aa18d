package repositories

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// RuleReader defines read operations for category rules
type RuleReader interface {
	// FindRuleByID retrieves a rule scoped to a household.
	FindRuleByID(ctx context.Context, householdID, ruleID string) (*domain.CategoryRule, error)

	// ListRules retrieves all of a household's rules ordered by priority
	// descending, then creation time descending.
	ListRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error)
}

// RuleWriter defines write operations for category rules
type RuleWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.CategoryRule) error

	// DeleteRules removes the given rules. Ids outside the household are
	// silently ignored; returns the number of rows removed.
	DeleteRules(ctx context.Context, householdID string, ruleIDs []string) (int, error)

	// SetRulesActive toggles the active flag on the given rules. Ids outside
	// the household are silently ignored; returns the number of rows updated.
	SetRulesActive(ctx context.Context, householdID string, ruleIDs []string, active bool) (int, error)
}

// RuleRepositoryFacade combines all rule repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
