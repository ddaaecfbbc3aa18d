package dto

import "github.com/hfa-project/home_finance_app/internal/core/domain"

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	Type             string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	ParentCategoryID *string `json:"parentCategoryID"`
	Icon             string  `json:"icon"`
	SortOrder        int     `json:"sortOrder"`
}

// CategoryResponse defines the category representation returned to clients.
type CategoryResponse struct {
	CategoryID       string  `json:"categoryID"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	ParentCategoryID *string `json:"parentCategoryID,omitempty"`
	Icon             string  `json:"icon,omitempty"`
	SortOrder        int     `json:"sortOrder"`
}

// ToCategoryResponse maps a domain Category to its response form.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		Type:             string(c.Type),
		ParentCategoryID: c.ParentCategoryID,
		Icon:             c.Icon,
		SortOrder:        c.SortOrder,
	}
}

// ToCategoryResponseSlice maps a slice of domain Categories.
func ToCategoryResponseSlice(cs []domain.Category) []CategoryResponse {
	rs := make([]CategoryResponse, len(cs))
	for i := range cs {
		rs[i] = ToCategoryResponse(&cs[i])
	}
	return rs
}
