package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/middleware"
)

// DigitalController handles digital library requests
type DigitalController struct {
	digitalService services.DigitalService
}

// NewDigitalController creates a new DigitalController
func NewDigitalController(digitalService services.DigitalService) *DigitalController {
	return &DigitalController{
		digitalService: digitalService,
	}
}

// ListDigitalMaterials lists available digital materials
// @Summary List digital materials
// @Description Lists available digital and thesis materials with their asset metadata
// @Tags digital
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DigitalMaterialResponse} "Digital materials"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /digital [get]
func (c *DigitalController) ListDigitalMaterials(ctx *gin.Context) {
	materials, err := c.digitalService.ListAvailable(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.DigitalMaterialResponse, 0, len(materials))
	for _, m := range materials {
		items = append(items, toDigitalMaterialResponse(m))
	}

	respondData(ctx, http.StatusOK, items)
}

// DownloadMaterial records a download and returns the file location
// @Summary Download a digital material
// @Description Records a download for the caller and returns the file URL
// @Tags digital
// @Produce json
// @Security BearerAuth
// @Param id path string true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.DownloadResponse} "Download recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid material ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 422 {object} dto.ErrorResponse "Material has no downloadable file"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /digital/{id}/download [post]
func (c *DigitalController) DownloadMaterial(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	materialID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	download, fileURL, err := c.digitalService.Download(ctx, userID, materialID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.DownloadResponse{
		DownloadID: download.ID.String(),
		FileURL:    fileURL,
	})
}

// ListDownloads lists the caller's download history
// @Summary List own downloads
// @Description Lists the authenticated user's downloads, most recent first
// @Tags digital
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Download} "Downloads"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /digital/downloads [get]
func (c *DigitalController) ListDownloads(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	downloads, err := c.digitalService.ListDownloads(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, downloads)
}

func toDigitalMaterialResponse(m *models.Material) dto.DigitalMaterialResponse {
	resp := dto.DigitalMaterialResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Author:      m.Author,
		Type:        string(m.Type),
		Year:        m.Year,
		ISBN:        m.ISBN,
		Description: m.Description,
		FileURL:     m.FileURL,
	}
	if m.DigitalAsset != nil {
		resp.Pages = m.DigitalAsset.Pages
		resp.SizeBytes = m.DigitalAsset.SizeBytes
	}
	return resp
}
