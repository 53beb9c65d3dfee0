package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/repositories"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/helpers"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// CatalogService defines the catalog browsing and administration operations
type CatalogService interface {
	// List returns materials matching the filters, paginated
	List(ctx context.Context, filters dto.MaterialFilters) ([]*models.Material, dto.PaginationInfo, error)
	// GetByID returns a material with its category and asset metadata
	GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
	// Create adds a material to the catalog
	Create(ctx context.Context, req dto.CreateMaterialRequest) (*models.Material, error)
	// Update edits the descriptive fields of a material
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*models.Material, error)
	// ListCategories returns all categories ordered by name
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type catalogService struct {
	materials  *repositories.MaterialRepository
	categories *repositories.CategoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(materials *repositories.MaterialRepository, categories *repositories.CategoryRepository) CatalogService {
	return &catalogService{
		materials:  materials,
		categories: categories,
	}
}

// List returns materials matching the filters, paginated
func (s *catalogService) List(ctx context.Context, filters dto.MaterialFilters) ([]*models.Material, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filters.Page, filters.PageSize)

	materials, total, err := s.materials.List(ctx, repositories.MaterialFilter{
		Search:   filters.Search,
		Category: filters.Category,
		Type:     filters.Type,
		Status:   filters.Status,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return materials, helpers.NewPaginationInfo(total, filters.Page, limit), nil
}

// GetByID returns a material with its category and asset metadata
func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	return s.materials.GetByID(ctx, id)
}

// Create adds a material to the catalog. Physical materials start with all
// copies available; digital and thesis materials require an asset file path
// and carry no inventory.
func (s *catalogService) Create(ctx context.Context, req dto.CreateMaterialRequest) (*models.Material, error) {
	materialType := models.MaterialType(req.Type)

	material := &models.Material{
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		Type:        materialType,
		Status:      models.MaterialAvailable,
		ISBN:        req.ISBN,
		Description: req.Description,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperrors.ErrCategoryNotFound
		}
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return nil, err
		}
		material.CategoryID = &categoryID
	}

	switch materialType {
	case models.MaterialPhysical:
		copies := req.CopiesTotal
		if copies <= 0 {
			copies = 1
		}
		material.CopiesTotal = copies
		material.CopiesAvailable = copies

	case models.MaterialDigital, models.MaterialThesis:
		if req.FilePath == nil || *req.FilePath == "" {
			return nil, apperrors.ErrValidationFailed
		}
		fileURL := fmt.Sprintf("/uploads/%s", *req.FilePath)
		material.FileURL = &fileURL
	}

	if err := s.materials.Create(ctx, material); err != nil {
		return nil, err
	}

	if material.Type != models.MaterialPhysical {
		asset := &models.DigitalAsset{
			MaterialID: material.ID,
			FilePath:   *req.FilePath,
		}
		if err := s.materials.CreateDigitalAsset(ctx, asset); err != nil {
			return nil, err
		}
		material.DigitalAsset = asset
	}

	logger.Info().
		Str("material_id", material.ID.String()).
		Str("type", string(material.Type)).
		Msg("Material created")

	return material, nil
}

// Update edits the descriptive fields of a material. Shrinking copies_total
// clamps copies_available; inventory is otherwise untouched.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*models.Material, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	material.Title = req.Title
	material.Author = req.Author
	material.Year = req.Year
	material.ISBN = req.ISBN
	material.Description = req.Description

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperrors.ErrCategoryNotFound
		}
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return nil, err
		}
		material.CategoryID = &categoryID
	} else {
		material.CategoryID = nil
	}

	if material.Type == models.MaterialPhysical && req.CopiesTotal > 0 {
		material.CopiesTotal = req.CopiesTotal
	}

	if err := s.materials.Update(ctx, material); err != nil {
		return nil, err
	}

	return s.materials.GetByID(ctx, id)
}

// ListCategories returns all categories ordered by name
func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.List(ctx)
}
