package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/dberrors"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug, created_at FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id, created_at`,
		category.Name, category.Slug,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}
