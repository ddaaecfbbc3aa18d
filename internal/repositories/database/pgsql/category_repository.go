package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	"github.com/hfa-project/home_finance_app/internal/models"
	"github.com/hfa-project/home_finance_app/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, household_id, name, type, parent_category_id, icon, sort_order, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.CollectableRow) (models.Category, error) {
	var cat models.Category
	err := row.Scan(
		&cat.CategoryID,
		&cat.HouseholdID,
		&cat.Name,
		&cat.Type,
		&cat.ParentCategoryID,
		&cat.Icon,
		&cat.SortOrder,
		&cat.CreatedAt,
		&cat.CreatedBy,
		&cat.LastUpdatedAt,
		&cat.LastUpdatedBy,
	)
	return cat, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	model := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		model.CategoryID,
		model.HouseholdID,
		model.Name,
		model.Type,
		model.ParentCategoryID,
		model.Icon,
		model.SortOrder,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", model.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category scoped to a household.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, householdID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE household_id = $1 AND category_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category %s: %w", categoryID, err)
	}
	model, err := pgx.CollectOneRow(rows, scanCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	domainCat := mapping.ToDomainCategory(model)
	return &domainCat, nil
}

// ListCategories retrieves all of a household's categories ordered by sort
// order, then name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, householdID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE household_id = $1
		ORDER BY sort_order, name;
	`
	rows, err := r.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCats, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return mapping.ToDomainCategorySlice(modelCats), nil
}

// ListCategoryIDs returns the set of existing category ids for a household.
func (r *PgxCategoryRepository) ListCategoryIDs(ctx context.Context, householdID string) (map[string]bool, error) {
	query := `SELECT category_id FROM categories WHERE household_id = $1;`
	rows, err := r.Pool.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category ids: %w", err)
	}
	return ids, nil
}
