package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/middleware"
)

// CatalogController handles catalog browsing and administration requests
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListMaterials lists catalog materials
// @Summary List materials
// @Description Lists catalog materials with optional search and filters, paginated
// @Tags catalog
// @Produce json
// @Param search query string false "Search in title, author, ISBN and description"
// @Param category query string false "Category id or slug"
// @Param type query string false "Material type" Enums(physical, digital, thesis)
// @Param status query string false "Material status" Enums(available, loaned, reserved)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(24)
// @Success 200 {object} dto.APIResponse{data=dto.MaterialListResponse} "Materials"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials [get]
func (c *CatalogController) ListMaterials(ctx *gin.Context) {
	var filters dto.MaterialFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	materials, pagination, err := c.catalogService.List(ctx, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.MaterialListResponse{
		Materials:  materials,
		Pagination: pagination,
	})
}

// GetMaterial retrieves a material by ID
// @Summary Get material by ID
// @Description Retrieves a material with its category and asset metadata
// @Tags catalog
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.APIResponse{data=models.Material} "Material"
// @Failure 400 {object} dto.ErrorResponse "Invalid material ID"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id} [get]
func (c *CatalogController) GetMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	material, err := c.catalogService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, material)
}

// CreateMaterial adds a material to the catalog
// @Summary Create a material
// @Description Adds a material to the catalog. Staff only.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMaterialRequest true "Material data"
// @Success 201 {object} dto.APIResponse{data=models.Material} "Material created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials [post]
func (c *CatalogController) CreateMaterial(ctx *gin.Context) {
	var req dto.CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	material, err := c.catalogService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, material)
}

// UpdateMaterial edits a material
// @Summary Update a material
// @Description Edits the descriptive fields of a material. Staff only.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Material ID"
// @Param request body dto.UpdateMaterialRequest true "Material data"
// @Success 200 {object} dto.APIResponse{data=models.Material} "Material updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /materials/{id} [put]
func (c *CatalogController) UpdateMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	material, err := c.catalogService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, material)
}

// ListCategories lists all categories
// @Summary List categories
// @Description Lists all catalog categories ordered by name
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalogService.ListCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, categories)
}
