package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
	"github.com/hfa-project/home_finance_app/internal/platform/metrics"
)

type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionReader
	sink         metrics.Sink
}

// NewBudgetService creates the budget service. A nil sink disables metrics.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, txnRepo portsrepo.TransactionReader, sink metrics.Sink) portssvc.BudgetSvcFacade {
	if sink == nil {
		sink = metrics.Noop{}
	}
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		sink:         sink,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// monthRange converts a "YYYY-MM" month to its inclusive [from, to] UTC
// instant range: the first and last nanosecond of the calendar month.
func monthRange(month string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, apperrors.ErrValidation)
	}
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to, nil
}

// evaluateBudget computes the status of one budget given the actual spend.
// Limit checks take precedence over the alert threshold: a breached hard
// limit reports exceeded_hard even when the soft conditions also hold.
func evaluateBudget(budget domain.Budget, actual decimal.Decimal) domain.BudgetEvaluation {
	eval := domain.BudgetEvaluation{
		Budget:       budget,
		ActualAmount: actual,
		Status:       domain.BudgetOK,
	}

	if budget.PlannedAmount.IsZero() {
		if !actual.IsZero() {
			eval.Unbounded = true
		}
	} else {
		eval.PercentOfPlan = actual.Div(budget.PlannedAmount).Mul(decimal.NewFromInt(100))
	}

	threshold := budget.AlertThreshold
	if threshold.IsZero() {
		threshold = domain.DefaultAlertThreshold
	}

	switch {
	case budget.LimitAmount != nil && budget.LimitType != nil && *budget.LimitType == domain.LimitHard && actual.GreaterThanOrEqual(*budget.LimitAmount):
		eval.Status = domain.BudgetExceededHard
	case budget.LimitAmount != nil && budget.LimitType != nil && *budget.LimitType == domain.LimitSoft && actual.GreaterThanOrEqual(*budget.LimitAmount):
		eval.Status = domain.BudgetExceededSoft
	case !budget.PlannedAmount.IsZero() && actual.GreaterThanOrEqual(budget.PlannedAmount.Mul(threshold)):
		eval.Status = domain.BudgetNearingLimit
	case budget.PlannedAmount.IsZero() && eval.Unbounded:
		eval.Status = domain.BudgetNearingLimit
	}
	return eval
}

// EvaluateMonth evaluates every budget of the household for the month.
// Actuals are the sum of non-ignored expense transactions in the budget's
// category over the calendar month.
func (s *budgetService) EvaluateMonth(ctx context.Context, householdID, month string) ([]domain.BudgetEvaluation, error) {
	from, to, err := monthRange(month)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.ListBudgetsByMonth(ctx, householdID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	started := time.Now()
	alerting := 0
	evaluations := make([]domain.BudgetEvaluation, 0, len(budgets))
	for _, budget := range budgets {
		actual, err := s.txnRepo.SumExpenseAmounts(ctx, householdID, budget.CategoryID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to sum actuals for category %s: %w", budget.CategoryID, err)
		}
		eval := evaluateBudget(budget, actual)
		if eval.Status != domain.BudgetOK {
			alerting++
		}
		evaluations = append(evaluations, eval)
	}

	tags := map[string]any{"household_id": householdID, "month": month}
	s.sink.Count("budget.evaluations", len(evaluations), tags)
	s.sink.Count("budget.alerts", alerting, tags)
	s.sink.Timing("budget.evaluate_duration", time.Since(started), tags)
	return evaluations, nil
}

// ListAlerts returns the month's evaluations whose status is not ok.
func (s *budgetService) ListAlerts(ctx context.Context, householdID, month string) ([]domain.BudgetEvaluation, error) {
	evaluations, err := s.EvaluateMonth(ctx, householdID, month)
	if err != nil {
		return nil, err
	}
	alerts := make([]domain.BudgetEvaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if e.Status != domain.BudgetOK {
			alerts = append(alerts, e)
		}
	}
	return alerts, nil
}

// UpsertBudget creates or replaces the budget for one (category, month).
// A limit amount requires a limit type and vice versa; the alert threshold
// defaults when absent.
func (s *budgetService) UpsertBudget(ctx context.Context, householdID string, req dto.UpsertBudgetRequest, actorUserID string) (*domain.Budget, error) {
	if (req.LimitAmount == nil) != (req.LimitType == nil) {
		return nil, fmt.Errorf("limitAmount and limitType must be set together: %w", apperrors.ErrValidation)
	}
	if req.PlannedAmount.IsNegative() {
		return nil, fmt.Errorf("plannedAmount must not be negative: %w", apperrors.ErrValidation)
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, householdID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	threshold := domain.DefaultAlertThreshold
	if req.AlertThreshold != nil {
		if req.AlertThreshold.IsNegative() || req.AlertThreshold.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("alertThreshold must be within [0, 1]: %w", apperrors.ErrValidation)
		}
		threshold = *req.AlertThreshold
	}

	var limitType *domain.LimitType
	if req.LimitType != nil {
		lt := domain.LimitType(*req.LimitType)
		limitType = &lt
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		HouseholdID:    householdID,
		CategoryID:     category.CategoryID,
		Month:          req.Month,
		PlannedAmount:  req.PlannedAmount,
		LimitAmount:    req.LimitAmount,
		LimitType:      limitType,
		AlertThreshold: threshold,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if existing, err := s.budgetRepo.FindBudget(ctx, householdID, category.CategoryID, req.Month); err == nil {
		budget.BudgetID = existing.BudgetID
		budget.CreatedAt = existing.CreatedAt
		budget.CreatedBy = existing.CreatedBy
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing budget: %w", err)
	}

	if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	s.LogInfo(ctx, "Budget upserted", slog.String("budget_id", budget.BudgetID), slog.String("month", budget.Month))
	return &budget, nil
}

// CopyMonth duplicates one month's budgets into another. Categories already
// budgeted in the target month keep their existing budget untouched.
func (s *budgetService) CopyMonth(ctx context.Context, householdID, fromMonth, toMonth, actorUserID string) (int, error) {
	if fromMonth == toMonth {
		return 0, fmt.Errorf("source and target month are the same: %w", apperrors.ErrValidation)
	}
	source, err := s.budgetRepo.ListBudgetsByMonth(ctx, householdID, fromMonth)
	if err != nil {
		return 0, fmt.Errorf("failed to list source budgets: %w", err)
	}
	target, err := s.budgetRepo.ListBudgetsByMonth(ctx, householdID, toMonth)
	if err != nil {
		return 0, fmt.Errorf("failed to list target budgets: %w", err)
	}
	existing := make(map[string]bool, len(target))
	for _, b := range target {
		existing[b.CategoryID] = true
	}

	now := time.Now()
	copied := 0
	for _, b := range source {
		if existing[b.CategoryID] {
			continue
		}
		b.BudgetID = uuid.NewString()
		b.Month = toMonth
		b.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		}
		if err := s.budgetRepo.UpsertBudget(ctx, b); err != nil {
			return copied, fmt.Errorf("failed to copy budget for category %s: %w", b.CategoryID, err)
		}
		copied++
	}
	s.LogInfo(ctx, "Budgets copied", slog.String("from", fromMonth), slog.String("to", toMonth), slog.Int("copied", copied))
	return copied, nil
}
