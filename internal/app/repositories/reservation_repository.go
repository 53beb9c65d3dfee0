package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/dberrors"
)

// ReservationRepository handles database operations for reservations
type ReservationRepository struct {
	db *pgxpool.Pool
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{
		db: db,
	}
}

// GetByID retrieves a reservation by ID
func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	query := `
		SELECT id, material_id, user_id, reservation_date, expiry_date, completed_date, status
		FROM reservations
		WHERE id = $1
	`

	var reservation models.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.MaterialID,
		&reservation.UserID,
		&reservation.ReservationDate,
		&reservation.ExpiryDate,
		&reservation.CompletedDate,
		&reservation.Status,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("error retrieving reservation: %w", err)
	}

	return &reservation, nil
}

// GetPending retrieves the user's pending reservation for a material, if any
func (r *ReservationRepository) GetPending(ctx context.Context, userID, materialID uuid.UUID) (*models.Reservation, error) {
	query := `
		SELECT id, material_id, user_id, reservation_date, expiry_date, completed_date, status
		FROM reservations
		WHERE user_id = $1 AND material_id = $2 AND status = 'pending'
	`

	var reservation models.Reservation
	err := r.db.QueryRow(ctx, query, userID, materialID).Scan(
		&reservation.ID,
		&reservation.MaterialID,
		&reservation.UserID,
		&reservation.ReservationDate,
		&reservation.ExpiryDate,
		&reservation.CompletedDate,
		&reservation.Status,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("error retrieving pending reservation: %w", err)
	}

	return &reservation, nil
}

// CreatePending inserts a pending reservation. The partial unique index on
// (user_id, material_id) for pending reservations plus ON CONFLICT DO NOTHING
// make the operation idempotent: under a concurrent duplicate request exactly
// one row is created and the other call reports created = false.
func (r *ReservationRepository) CreatePending(ctx context.Context, reservation *models.Reservation) (bool, error) {
	query := `
		INSERT INTO reservations (material_id, user_id, reservation_date, expiry_date, status)
		VALUES ($1, $2, $3, $4, 'pending')
		ON CONFLICT (user_id, material_id) WHERE status = 'pending' DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		reservation.MaterialID,
		reservation.UserID,
		reservation.ReservationDate,
		reservation.ExpiryDate,
	).Scan(&reservation.ID)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("error creating reservation: %w", err)
	}

	reservation.Status = models.ReservationPending
	return true, nil
}

// ListByUser retrieves all reservations of a user, most recent first, with a
// summary of the reserved material.
func (r *ReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Reservation, error) {
	query := `
		SELECT rv.id, rv.material_id, rv.user_id, rv.reservation_date, rv.expiry_date,
			rv.completed_date, rv.status, m.title, m.author
		FROM reservations rv
		JOIN materials m ON m.id = rv.material_id
		WHERE rv.user_id = $1
		ORDER BY rv.reservation_date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		var reservation models.Reservation
		var summary models.MaterialSummary
		err := rows.Scan(
			&reservation.ID,
			&reservation.MaterialID,
			&reservation.UserID,
			&reservation.ReservationDate,
			&reservation.ExpiryDate,
			&reservation.CompletedDate,
			&reservation.Status,
			&summary.Title,
			&summary.Author,
		)
		if err != nil {
			return nil, err
		}
		summary.ID = reservation.MaterialID
		reservation.Material = &summary
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

// SetStatus moves a pending reservation to a terminal status. The status
// guard makes concurrent transitions settle exactly one winner.
func (r *ReservationRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus, completedDate *time.Time) error {
	query := `
		UPDATE reservations
		SET status = $2, completed_date = $3
		WHERE id = $1 AND status = 'pending'
	`

	cmdTag, err := r.db.Exec(ctx, query, id, status, completedDate)
	if err != nil {
		return fmt.Errorf("error updating reservation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReservationNotPending
	}

	return nil
}

// ExpirePending marks every pending reservation whose expiry date has passed
// as expired, and returns the number of reservations swept.
func (r *ReservationRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE reservations
		SET status = 'expired'
		WHERE status = 'pending' AND expiry_date < $1
	`

	cmdTag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("error expiring reservations: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
