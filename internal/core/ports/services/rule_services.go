package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

// RuleReaderSvc defines read operations for category rules
type RuleReaderSvc interface {
	// ListRules retrieves a household's rules in evaluation order, with the
	// broken flag resolved against the current category set.
	ListRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error)

	// ListEvaluableRules retrieves the rules eligible for evaluation:
	// active and not broken, in evaluation order.
	ListEvaluableRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error)
}

// RuleWriterSvc defines write operations for category rules
type RuleWriterSvc interface {
	// CreateRule persists a new rule.
	CreateRule(ctx context.Context, householdID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.CategoryRule, error)

	// CreateRuleFromTransaction turns a manually categorized transaction
	// into a merchant (or keyword) rule targeting its category. This is an
	// explicit operation; manual categorization alone never creates rules.
	CreateRuleFromTransaction(ctx context.Context, householdID string, req dto.CreateRuleFromTransactionRequest, creatorUserID string) (*domain.CategoryRule, error)

	// BatchDeleteRules deletes the given rules. Ids outside the household
	// are no-ops.
	BatchDeleteRules(ctx context.Context, householdID string, ruleIDs []string) (int, error)

	// BatchSetRulesActive toggles the given rules. Ids outside the
	// household are no-ops.
	BatchSetRulesActive(ctx context.Context, householdID string, ruleIDs []string, active bool) (int, error)
}

// RuleEvaluatorSvc defines the side-effect-free evaluation operations
type RuleEvaluatorSvc interface {
	// Evaluate runs the rules (assumed already in evaluation order) against
	// one transaction and returns the target category id of the first
	// match, or nil when no rule matches. Invalid regex rules are skipped.
	Evaluate(rules []domain.CategoryRule, txn domain.MappedTransaction) *string

	// TestRule reports whether a pattern matches a sample text. A malformed
	// regex is reported in the response, never as an error.
	TestRule(req dto.RuleTestRequest) dto.RuleTestResponse
}

// RuleSvcFacade combines all rule service interfaces
type RuleSvcFacade interface {
	RuleReaderSvc
	RuleWriterSvc
	RuleEvaluatorSvc
}
