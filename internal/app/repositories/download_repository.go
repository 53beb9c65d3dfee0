package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
)

// DownloadRepository records downloads of digital materials
type DownloadRepository struct {
	db *pgxpool.Pool
}

// NewDownloadRepository creates a new download repository
func NewDownloadRepository(db *pgxpool.Pool) *DownloadRepository {
	return &DownloadRepository{
		db: db,
	}
}

// Create records a download
func (r *DownloadRepository) Create(ctx context.Context, download *models.Download) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO downloads (material_id, user_id) VALUES ($1, $2) RETURNING id, downloaded_at`,
		download.MaterialID, download.UserID,
	).Scan(&download.ID, &download.DownloadedAt)
	if err != nil {
		return fmt.Errorf("error recording download: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's download history, most recent first, with a
// summary of the downloaded material.
func (r *DownloadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Download, error) {
	query := `
		SELECT d.id, d.material_id, d.user_id, d.downloaded_at, m.title, m.author
		FROM downloads d
		JOIN materials m ON m.id = d.material_id
		WHERE d.user_id = $1
		ORDER BY d.downloaded_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing downloads: %w", err)
	}
	defer rows.Close()

	var downloads []*models.Download
	for rows.Next() {
		var download models.Download
		var summary models.MaterialSummary
		err := rows.Scan(
			&download.ID,
			&download.MaterialID,
			&download.UserID,
			&download.DownloadedAt,
			&summary.Title,
			&summary.Author,
		)
		if err != nil {
			return nil, err
		}
		summary.ID = download.MaterialID
		download.Material = &summary
		downloads = append(downloads, &download)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return downloads, nil
}
