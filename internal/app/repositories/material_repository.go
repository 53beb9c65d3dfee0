package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/dberrors"
)

// MaterialFilter carries the optional filters for catalog listings
type MaterialFilter struct {
	Search   string
	Category string // category id or slug
	Type     string
	Status   string
	Offset   int
	Limit    int
}

// MaterialRepository handles database operations for catalog materials.
// It is also the inventory ledger: the copies_available counter and the
// derived status column are only ever written here.
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		db: db,
	}
}

const materialColumns = `
	m.id, m.title, m.author, m.category_id, m.year, m.type, m.status,
	m.isbn, m.description, m.copies_total, m.copies_available, m.file_url,
	m.created_at, m.updated_at
`

func scanMaterial(row pgx.Row) (*models.Material, error) {
	var m models.Material
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Author,
		&m.CategoryID,
		&m.Year,
		&m.Type,
		&m.Status,
		&m.ISBN,
		&m.Description,
		&m.CopiesTotal,
		&m.CopiesAvailable,
		&m.FileURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new material
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	query := `
		INSERT INTO materials (title, author, category_id, year, type, status, isbn,
			description, copies_total, copies_available, file_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		material.Title,
		material.Author,
		material.CategoryID,
		material.Year,
		material.Type,
		material.Status,
		material.ISBN,
		material.Description,
		material.CopiesTotal,
		material.CopiesAvailable,
		material.FileURL,
	).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating material: %w", err)
	}

	return nil
}

// GetByID retrieves a material by ID together with its category and, for
// digital materials, its asset metadata.
func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials m WHERE m.id = $1`

	material, err := scanMaterial(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("error retrieving material: %w", err)
	}

	if material.CategoryID != nil {
		var category models.Category
		err := r.db.QueryRow(ctx,
			`SELECT id, name, slug, created_at FROM categories WHERE id = $1`,
			*material.CategoryID,
		).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt)
		if err == nil {
			material.Category = &category
		} else if !dberrors.IsNoRows(err) {
			return nil, fmt.Errorf("error retrieving material category: %w", err)
		}
	}

	if material.Type != models.MaterialPhysical {
		asset, err := r.getDigitalAsset(ctx, material.ID)
		if err != nil {
			return nil, err
		}
		material.DigitalAsset = asset
	}

	return material, nil
}

func (r *MaterialRepository) getDigitalAsset(ctx context.Context, materialID uuid.UUID) (*models.DigitalAsset, error) {
	var asset models.DigitalAsset
	err := r.db.QueryRow(ctx,
		`SELECT id, material_id, file_path, pages, size_bytes FROM digital_assets WHERE material_id = $1`,
		materialID,
	).Scan(&asset.ID, &asset.MaterialID, &asset.FilePath, &asset.Pages, &asset.SizeBytes)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving digital asset: %w", err)
	}
	return &asset, nil
}

// List retrieves materials matching the filter, newest first, plus the total
// match count for pagination.
func (r *MaterialRepository) List(ctx context.Context, filter MaterialFilter) ([]*models.Material, int64, error) {
	var conditions []string
	var args []interface{}

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := addArg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(m.title ILIKE %[1]s OR m.author ILIKE %[1]s OR m.isbn ILIKE %[1]s OR m.description ILIKE %[1]s)", p))
	}
	if filter.Category != "" {
		if categoryID, err := uuid.Parse(filter.Category); err == nil {
			conditions = append(conditions, "m.category_id = "+addArg(categoryID))
		} else {
			conditions = append(conditions,
				"m.category_id IN (SELECT id FROM categories WHERE slug = "+addArg(filter.Category)+")")
		}
	}
	if filter.Type != "" {
		conditions = append(conditions, "m.type = "+addArg(filter.Type))
	}
	if filter.Status != "" {
		conditions = append(conditions, "m.status = "+addArg(filter.Status))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM materials m` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting materials: %w", err)
	}

	query := `SELECT ` + materialColumns + ` FROM materials m` + where +
		` ORDER BY m.created_at DESC LIMIT ` + addArg(filter.Limit) + ` OFFSET ` + addArg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, err
		}
		materials = append(materials, material)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return materials, total, nil
}

// ListDigital retrieves available digital and thesis materials together with
// their asset metadata, newest first.
func (r *MaterialRepository) ListDigital(ctx context.Context) ([]*models.Material, error) {
	query := `
		SELECT ` + materialColumns + `,
			a.id, a.material_id, a.file_path, a.pages, a.size_bytes
		FROM materials m
		LEFT JOIN digital_assets a ON a.material_id = m.id
		WHERE m.type IN ('digital', 'thesis') AND m.status = 'available'
		ORDER BY m.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing digital materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		var m models.Material
		var assetID, assetMaterialID *uuid.UUID
		var filePath *string
		var pages *int
		var sizeBytes *int64
		err := rows.Scan(
			&m.ID, &m.Title, &m.Author, &m.CategoryID, &m.Year, &m.Type, &m.Status,
			&m.ISBN, &m.Description, &m.CopiesTotal, &m.CopiesAvailable, &m.FileURL,
			&m.CreatedAt, &m.UpdatedAt,
			&assetID, &assetMaterialID, &filePath, &pages, &sizeBytes,
		)
		if err != nil {
			return nil, err
		}
		if assetID != nil && filePath != nil {
			m.DigitalAsset = &models.DigitalAsset{
				ID:         *assetID,
				MaterialID: *assetMaterialID,
				FilePath:   *filePath,
				Pages:      pages,
				SizeBytes:  sizeBytes,
			}
		}
		materials = append(materials, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return materials, nil
}

// Update updates the editable fields of a material
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	query := `
		UPDATE materials
		SET title = $1, author = $2, category_id = $3, year = $4, isbn = $5,
			description = $6, copies_total = $7,
			copies_available = LEAST(copies_available, $7),
			updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		material.Title,
		material.Author,
		material.CategoryID,
		material.Year,
		material.ISBN,
		material.Description,
		material.CopiesTotal,
		material.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating material: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}

// CreateDigitalAsset inserts asset metadata for a digital material
func (r *MaterialRepository) CreateDigitalAsset(ctx context.Context, asset *models.DigitalAsset) error {
	query := `
		INSERT INTO digital_assets (material_id, file_path, pages, size_bytes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		asset.MaterialID,
		asset.FilePath,
		asset.Pages,
		asset.SizeBytes,
	).Scan(&asset.ID)
	if err != nil {
		return fmt.Errorf("error creating digital asset: %w", err)
	}

	return nil
}

// DecrementAvailableTx takes one copy of a physical material off the shelf as
// part of a loan transaction. The decrement and the availability check are a
// single conditional UPDATE so concurrent loan requests cannot drive the
// counter negative; when the last copy goes out the status flips to loaned.
func (r *MaterialRepository) DecrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE materials
		SET copies_available = copies_available - 1,
			status = CASE WHEN copies_available - 1 <= 0 THEN 'loaned' ELSE status END,
			updated_at = NOW()
		WHERE id = $1 AND copies_available > 0
	`

	cmdTag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error decrementing available copies: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoCopiesAvailable
	}

	return nil
}

// IncrementAvailableTx puts a copy back on the shelf as part of a return
// transaction. The counter is clamped to copies_total so duplicate returns
// cannot exceed the stock, and the material becomes available again.
func (r *MaterialRepository) IncrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE materials
		SET copies_available = LEAST(copies_available + 1, copies_total),
			status = 'available',
			updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error incrementing available copies: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}

	return nil
}
