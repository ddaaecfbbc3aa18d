package models

// CategoryRule maps to the category_rules table. Broken is not a column; it
// is derived at read time by joining against categories.
type CategoryRule struct {
	RuleID           string `db:"rule_id"`
	HouseholdID      string `db:"household_id"`
	Type             string `db:"type"`
	Pattern          string `db:"pattern"`
	TargetCategoryID string `db:"target_category_id"`
	Priority         int    `db:"priority"`
	IsActive         bool   `db:"is_active"`
	Broken           bool   `db:"-"`
	AuditFields
}
