package models

import "github.com/shopspring/decimal"

// Budget maps to the budgets table. One row per (household, category, month)
// enforced by a unique constraint; writes use upsert semantics.
type Budget struct {
	BudgetID       string           `db:"budget_id"`
	HouseholdID    string           `db:"household_id"`
	CategoryID     string           `db:"category_id"`
	Month          string           `db:"month"`
	PlannedAmount  decimal.Decimal  `db:"planned_amount"`
	LimitAmount    *decimal.Decimal `db:"limit_amount"`
	LimitType      *string          `db:"limit_type"`
	AlertThreshold decimal.Decimal  `db:"alert_threshold"`
	AuditFields
}
