package domain

// Household is the tenant boundary for all financial data: connections,
// transactions, categories, rules and budgets are all scoped to exactly one
// household.
type Household struct {
	HouseholdID      string `json:"householdID"` // Primary Key (UUID)
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"` // e.g. "ILS"; drives foreign-currency annotations
	IsActive         bool   `json:"isActive"`
	AuditFields
}
