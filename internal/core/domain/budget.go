package domain

import "github.com/shopspring/decimal"

// LimitType distinguishes an advisory limit from a blocking one.
type LimitType string

const (
	LimitSoft LimitType = "soft"
	LimitHard LimitType = "hard"
)

// DefaultAlertThreshold is the fraction of the planned amount at which a
// budget is reported as nearing its limit.
var DefaultAlertThreshold = decimal.NewFromFloat(0.8)

// Budget is the planned spend for one (household, category, month). Month is
// a "YYYY-MM" string; upsert semantics apply per key.
type Budget struct {
	BudgetID       string           `json:"budgetID"` // Primary Key (UUID)
	HouseholdID    string           `json:"householdID"`
	CategoryID     string           `json:"categoryID"`
	Month          string           `json:"month"` // "YYYY-MM"
	PlannedAmount  decimal.Decimal  `json:"plannedAmount"`
	LimitAmount    *decimal.Decimal `json:"limitAmount"` // Nil when no limit is set
	LimitType      *LimitType       `json:"limitType"`   // Set iff LimitAmount is set
	AlertThreshold decimal.Decimal  `json:"alertThreshold"` // Fraction of planned, default 0.8
	AuditFields
}

// BudgetStatus is the evaluated standing of a budget for its month.
type BudgetStatus string

const (
	BudgetOK           BudgetStatus = "ok"
	BudgetNearingLimit BudgetStatus = "nearing_limit"
	BudgetExceededSoft BudgetStatus = "exceeded_soft"
	BudgetExceededHard BudgetStatus = "exceeded_hard"
)

// BudgetEvaluation is derived, never persisted: a budget joined with the
// actual spend of its month. PercentOfPlan is meaningless when Unbounded is
// set (planned amount zero with non-zero spend); callers display "over".
type BudgetEvaluation struct {
	Budget        Budget          `json:"budget"`
	ActualAmount  decimal.Decimal `json:"actualAmount"`
	Status        BudgetStatus    `json:"status"`
	PercentOfPlan decimal.Decimal `json:"percentOfPlan"`
	Unbounded     bool            `json:"unbounded"`
}
