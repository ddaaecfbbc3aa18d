package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategory(ctx context.Context, householdID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, householdID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, householdID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory persists a new category. Nesting is one level deep: a
// parent must itself be a root category, and a child inherits its parent's
// income/expense type.
func (s *categoryService) CreateCategory(ctx context.Context, householdID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	categoryType := domain.CategoryType(req.Type)

	if req.ParentCategoryID != nil {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, householdID, *req.ParentCategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent category: %w", err)
		}
		if parent.ParentCategoryID != nil {
			return nil, fmt.Errorf("parent category is itself nested: %w", apperrors.ErrValidation)
		}
		if parent.Type != categoryType {
			return nil, fmt.Errorf("child category type %s does not match parent type %s: %w",
				categoryType, parent.Type, apperrors.ErrValidation)
		}
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		HouseholdID:      householdID,
		Name:             req.Name,
		Type:             categoryType,
		ParentCategoryID: req.ParentCategoryID,
		Icon:             req.Icon,
		SortOrder:        req.SortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}
