package models

// Category maps to the categories table.
type Category struct {
	CategoryID       string  `db:"category_id"`
	HouseholdID      string  `db:"household_id"`
	Name             string  `db:"name"`
	Type             string  `db:"type"`
	ParentCategoryID *string `db:"parent_category_id"`
	Icon             string  `db:"icon"`
	SortOrder        int     `db:"sort_order"`
	AuditFields
}
