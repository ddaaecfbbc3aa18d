package domain

// CategoryType determines which transaction direction a category can hold.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// Category is a household-scoped classification bucket. A single level of
// nesting is allowed: a subcategory's type must match its parent's type.
type Category struct {
	CategoryID       string       `json:"categoryID"` // Primary Key (UUID)
	HouseholdID      string       `json:"householdID"`
	Name             string       `json:"name"`
	Type             CategoryType `json:"type"`
	ParentCategoryID *string      `json:"parentCategoryID"` // Nil for top-level categories
	Icon             string       `json:"icon"`
	SortOrder        int          `json:"sortOrder"`
	AuditFields
}
