package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// UpsertBudgetRequest defines the payload for creating or replacing the
// budget of one (category, month). The yyyymm validation is registered as a
// custom binding validator.
type UpsertBudgetRequest struct {
	CategoryID     string           `json:"categoryID" binding:"required"`
	Month          string           `json:"month" binding:"required,yyyymm"`
	PlannedAmount  decimal.Decimal  `json:"plannedAmount" binding:"required"`
	LimitAmount    *decimal.Decimal `json:"limitAmount"`
	LimitType      *string          `json:"limitType" binding:"omitempty,oneof=soft hard"`
	AlertThreshold *decimal.Decimal `json:"alertThreshold"`
}

// CopyMonthRequest defines the payload for duplicating budgets to another
// month. Categories already budgeted in the target month are skipped.
type CopyMonthRequest struct {
	FromMonth string `json:"fromMonth" binding:"required,yyyymm"`
	ToMonth   string `json:"toMonth" binding:"required,yyyymm"`
}

// CopyMonthResponse reports how many budgets the copy created.
type CopyMonthResponse struct {
	Copied int `json:"copied"`
}

// BudgetResponse defines the persisted budget representation.
type BudgetResponse struct {
	BudgetID       string           `json:"budgetID"`
	CategoryID     string           `json:"categoryID"`
	Month          string           `json:"month"`
	PlannedAmount  decimal.Decimal  `json:"plannedAmount"`
	LimitAmount    *decimal.Decimal `json:"limitAmount,omitempty"`
	LimitType      *string          `json:"limitType,omitempty"`
	AlertThreshold decimal.Decimal  `json:"alertThreshold"`
}

// BudgetEvaluationResponse joins a budget with its evaluated month status.
// Percent is the numeric percent-of-plan, or the literal "over" when the
// plan is zero and spend is not.
type BudgetEvaluationResponse struct {
	Budget       BudgetResponse  `json:"budget"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	Status       string          `json:"status"`
	Percent      string          `json:"percent"`
}

// ToBudgetResponse maps a domain Budget to its response form.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	var limitType *string
	if b.LimitType != nil {
		lt := string(*b.LimitType)
		limitType = &lt
	}
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		CategoryID:     b.CategoryID,
		Month:          b.Month,
		PlannedAmount:  b.PlannedAmount,
		LimitAmount:    b.LimitAmount,
		LimitType:      limitType,
		AlertThreshold: b.AlertThreshold,
	}
}

// ToBudgetEvaluationResponse maps a domain BudgetEvaluation to its response form.
func ToBudgetEvaluationResponse(e *domain.BudgetEvaluation) BudgetEvaluationResponse {
	percent := e.PercentOfPlan.StringFixed(2)
	if e.Unbounded {
		percent = "over"
	}
	return BudgetEvaluationResponse{
		Budget:       ToBudgetResponse(&e.Budget),
		ActualAmount: e.ActualAmount,
		Status:       string(e.Status),
		Percent:      percent,
	}
}

// ToBudgetEvaluationResponseSlice maps a slice of evaluations.
func ToBudgetEvaluationResponseSlice(es []domain.BudgetEvaluation) []BudgetEvaluationResponse {
	rs := make([]BudgetEvaluationResponse, len(es))
	for i := range es {
		rs[i] = ToBudgetEvaluationResponse(&es[i])
	}
	return rs
}
