package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

type ruleService struct {
	BaseService
	ruleRepo     portsrepo.RuleRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionReader
}

// NewRuleService creates the category rule service.
func NewRuleService(ruleRepo portsrepo.RuleRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.RuleSvcFacade {
	return &ruleService{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

// ListRules returns the household's rules in evaluation order with the
// broken flag resolved: a rule whose target category no longer exists is
// flagged rather than hidden, so operators can repair or delete it.
func (s *ruleService) ListRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error) {
	rules, err := s.ruleRepo.ListRules(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	categoryIDs, err := s.categoryRepo.ListCategoryIDs(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category ids for broken-rule check: %w", err)
	}
	for i := range rules {
		rules[i].Broken = !categoryIDs[rules[i].TargetCategoryID]
	}
	return rules, nil
}

// ListEvaluableRules returns only the rules eligible for evaluation: active
// and not broken, in evaluation order.
func (s *ruleService) ListEvaluableRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error) {
	rules, err := s.ListRules(ctx, householdID)
	if err != nil {
		return nil, err
	}
	evaluable := make([]domain.CategoryRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive && !r.Broken {
			evaluable = append(evaluable, r)
		}
	}
	return evaluable, nil
}

// Evaluate runs the rules against one transaction, strictly by priority
// descending then creation time descending, stopping at the first match.
// Inactive or broken rules never match; an invalid regex pattern skips that
// rule only. Returns nil when nothing matches: the transaction stays
// explicitly uncategorized.
func (s *ruleService) Evaluate(rules []domain.CategoryRule, txn domain.MappedTransaction) *string {
	ordered := make([]domain.CategoryRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	for _, rule := range ordered {
		if !rule.IsActive || rule.Broken {
			continue
		}
		matched, err := matchRule(rule.Type, rule.Pattern, txn.Merchant, txn.Description)
		if err != nil {
			// Invalid pattern: skip this rule, keep evaluating.
			continue
		}
		if matched {
			target := rule.TargetCategoryID
			return &target
		}
	}
	return nil
}

// TestRule reports whether a pattern matches a sample text. Malformed regex
// patterns are reported in the response; this never fails across the
// boundary.
func (s *ruleService) TestRule(req dto.RuleTestRequest) dto.RuleTestResponse {
	matched, err := matchRule(domain.RuleType(req.Type), req.Pattern, req.SampleText, req.SampleText)
	if err != nil {
		return dto.RuleTestResponse{Matches: false, Error: "invalid pattern"}
	}
	return dto.RuleTestResponse{Matches: matched}
}

// matchRule applies one rule pattern to the merchant/description texts.
// merchant rules match the merchant text, keyword and regex rules the
// description. The returned error wraps apperrors.ErrRuleEvaluation for an
// uncompilable regex.
func matchRule(ruleType domain.RuleType, pattern, merchant, description string) (bool, error) {
	switch ruleType {
	case domain.RuleMerchant:
		if merchant == "" {
			return false, nil
		}
		return strings.Contains(strings.ToLower(merchant), strings.ToLower(pattern)), nil
	case domain.RuleKeyword:
		return strings.Contains(strings.ToLower(description), strings.ToLower(pattern)), nil
	case domain.RuleRegex:
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false, fmt.Errorf("invalid regex pattern %q: %w", pattern, apperrors.ErrRuleEvaluation)
		}
		return re.MatchString(description), nil
	default:
		return false, fmt.Errorf("unknown rule type %q: %w", ruleType, apperrors.ErrValidation)
	}
}

// CreateRule persists a new rule. The target category must exist in the
// household; regex patterns must compile.
func (s *ruleService) CreateRule(ctx context.Context, householdID string, req dto.CreateRuleRequest, creatorUserID string) (*domain.CategoryRule, error) {
	if domain.RuleType(req.Type) == domain.RuleRegex {
		if _, err := regexp.Compile("(?i)" + req.Pattern); err != nil {
			return nil, fmt.Errorf("pattern does not compile: %w", apperrors.ErrValidation)
		}
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, householdID, req.TargetCategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target category: %w", err)
	}

	now := time.Now()
	rule := domain.CategoryRule{
		RuleID:           uuid.NewString(),
		HouseholdID:      householdID,
		Type:             domain.RuleType(req.Type),
		Pattern:          req.Pattern,
		TargetCategoryID: category.CategoryID,
		Priority:         req.Priority,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to save rule: %w", err)
	}
	s.LogInfo(ctx, "Rule created", slog.String("rule_id", rule.RuleID), slog.String("type", req.Type))
	return &rule, nil
}

// CreateRuleFromTransaction turns a manually categorized transaction into a
// rule: a merchant rule when the transaction has a merchant, a keyword rule
// over its description otherwise. The transaction must already carry a
// category; nothing here happens implicitly during categorization.
func (s *ruleService) CreateRuleFromTransaction(ctx context.Context, householdID string, req dto.CreateRuleFromTransactionRequest, creatorUserID string) (*domain.CategoryRule, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, householdID, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn.CategoryID == nil {
		return nil, fmt.Errorf("transaction is not categorized: %w", apperrors.ErrValidation)
	}

	ruleType := domain.RuleMerchant
	pattern := txn.Merchant
	if pattern == "" {
		ruleType = domain.RuleKeyword
		pattern = strings.TrimSpace(txn.Description)
	}
	if pattern == "" {
		return nil, fmt.Errorf("transaction has no usable merchant or description: %w", apperrors.ErrValidation)
	}

	return s.CreateRule(ctx, householdID, dto.CreateRuleRequest{
		Type:             string(ruleType),
		Pattern:          pattern,
		TargetCategoryID: *txn.CategoryID,
		Priority:         req.Priority,
	}, creatorUserID)
}

// BatchDeleteRules deletes the given rules. Ids outside the household are
// silently skipped so rule ids of other households cannot be probed.
func (s *ruleService) BatchDeleteRules(ctx context.Context, householdID string, ruleIDs []string) (int, error) {
	affected, err := s.ruleRepo.DeleteRules(ctx, householdID, ruleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rules: %w", err)
	}
	return affected, nil
}

// BatchSetRulesActive toggles the given rules, with the same out-of-scope
// no-op semantics as BatchDeleteRules.
func (s *ruleService) BatchSetRulesActive(ctx context.Context, householdID string, ruleIDs []string, active bool) (int, error) {
	affected, err := s.ruleRepo.SetRulesActive(ctx, householdID, ruleIDs, active)
	if err != nil {
		return 0, fmt.Errorf("failed to toggle rules: %w", err)
	}
	return affected, nil
}
