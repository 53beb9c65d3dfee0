package models

import (
	"time"

	"github.com/google/uuid"
)

// DigitalAsset holds file metadata for digital and thesis materials,
// based on the 'digital_assets' table.
type DigitalAsset struct {
	ID         uuid.UUID `json:"id" db:"id"`
	MaterialID uuid.UUID `json:"materialId" db:"material_id"`
	FilePath   string    `json:"filePath" db:"file_path"`
	Pages      *int      `json:"pages,omitempty" db:"pages"`
	SizeBytes  *int64    `json:"sizeBytes,omitempty" db:"size_bytes"`
}

// Download records a user downloading a digital material, based on the
// 'downloads' table.
type Download struct {
	ID           uuid.UUID `json:"id" db:"id"`
	MaterialID   uuid.UUID `json:"materialId" db:"material_id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	DownloadedAt time.Time `json:"downloadedAt" db:"downloaded_at"`
	// Relation, no db tag
	Material *MaterialSummary `json:"material,omitempty"`
}
