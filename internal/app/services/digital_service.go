package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/repositories"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// DigitalService defines the digital library operations
type DigitalService interface {
	// ListAvailable returns available digital and thesis materials
	ListAvailable(ctx context.Context) ([]*models.Material, error)
	// Download records a download and returns where to fetch the file
	Download(ctx context.Context, userID, materialID uuid.UUID) (*models.Download, string, error)
	// ListDownloads returns the user's download history, most recent first
	ListDownloads(ctx context.Context, userID uuid.UUID) ([]*models.Download, error)
}

type digitalService struct {
	materials *repositories.MaterialRepository
	downloads *repositories.DownloadRepository
}

// NewDigitalService creates a new digital library service
func NewDigitalService(materials *repositories.MaterialRepository, downloads *repositories.DownloadRepository) DigitalService {
	return &digitalService{
		materials: materials,
		downloads: downloads,
	}
}

// ListAvailable returns available digital and thesis materials
func (s *digitalService) ListAvailable(ctx context.Context) ([]*models.Material, error) {
	return s.materials.ListDigital(ctx)
}

// Download records a download of a digital material for the caller and
// returns the file URL. Physical materials and materials without a stored
// file are not downloadable.
func (s *digitalService) Download(ctx context.Context, userID, materialID uuid.UUID) (*models.Download, string, error) {
	material, err := s.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, "", err
	}

	if material.Type == models.MaterialPhysical || material.FileURL == nil {
		return nil, "", apperrors.ErrMaterialNotDownloadable
	}

	download := &models.Download{
		MaterialID: materialID,
		UserID:     userID,
	}
	if err := s.downloads.Create(ctx, download); err != nil {
		return nil, "", err
	}

	logger.Info().
		Str("material_id", materialID.String()).
		Str("user_id", userID.String()).
		Msg("Download recorded")

	return download, *material.FileURL, nil
}

// ListDownloads returns the user's download history, most recent first
func (s *digitalService) ListDownloads(ctx context.Context, userID uuid.UUID) ([]*models.Download, error) {
	return s.downloads.ListByUser(ctx, userID)
}
