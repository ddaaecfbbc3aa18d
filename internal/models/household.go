package models

// Household maps to the households table.
type Household struct {
	HouseholdID      string `db:"household_id"`
	Name             string `db:"name"`
	BaseCurrencyCode string `db:"base_currency_code"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}
