package domain

// RuleType selects the matcher semantics of a category rule.
type RuleType string

const (
	RuleMerchant RuleType = "merchant" // Case-insensitive substring over the merchant text
	RuleKeyword  RuleType = "keyword"  // Case-insensitive substring over the description text
	RuleRegex    RuleType = "regex"    // Case-insensitive regexp over the full description
)

// CategoryRule maps a pattern to a target category. Rules are evaluated by
// priority descending, then creation time descending; the first match wins.
// Rules are soft-disabled through IsActive and never silently mutated by the
// engine.
type CategoryRule struct {
	RuleID           string   `json:"ruleID"` // Primary Key (UUID)
	HouseholdID      string   `json:"householdID"`
	Type             RuleType `json:"type"`
	Pattern          string   `json:"pattern"`
	TargetCategoryID string   `json:"targetCategoryID"`
	Priority         int      `json:"priority"` // Higher = evaluated first
	IsActive         bool     `json:"isActive"`
	// Broken is derived at read time: the target category no longer exists.
	// Broken rules are excluded from evaluation but stay visible for repair.
	Broken bool `json:"broken"`
	AuditFields
}
