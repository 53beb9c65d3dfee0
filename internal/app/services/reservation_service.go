package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// ReservationPolicy carries the reservation policy parameters
type ReservationPolicy struct {
	ExpiryDays int
}

// reservationStore is the slice of the reservation repository the service uses
type reservationStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	GetPending(ctx context.Context, userID, materialID uuid.UUID) (*models.Reservation, error)
	CreatePending(ctx context.Context, reservation *models.Reservation) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Reservation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus, completedDate *time.Time) error
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// materialReader is the read-only slice of the material repository
type materialReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
}

// ReservationService defines the reservation lifecycle operations
type ReservationService interface {
	// Create places a pending reservation for the caller, idempotently
	Create(ctx context.Context, userID, materialID uuid.UUID) (*models.Reservation, bool, error)
	// Cancel moves the caller's pending reservation to cancelled
	Cancel(ctx context.Context, reservationID, userID uuid.UUID, isStaff bool) error
	// Complete moves a pending reservation to completed, stamping the date
	Complete(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error)
	// ListByUser returns the user's reservations, most recent first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Reservation, error)
	// ExpireOverdue sweeps pending reservations past their expiry date
	ExpireOverdue(ctx context.Context) (int64, error)
}

type reservationService struct {
	reservations reservationStore
	materials    materialReader
	policy       ReservationPolicy
}

// NewReservationService creates a new reservation service
func NewReservationService(reservations reservationStore, materials materialReader, policy ReservationPolicy) ReservationService {
	return &reservationService{
		reservations: reservations,
		materials:    materials,
		policy:       policy,
	}
}

// Create places a pending reservation on a physical material. Creation is
// idempotent per (user, material): a repeated request returns the existing
// pending reservation with created = false instead of failing. Reservations
// never touch the inventory counters.
func (s *reservationService) Create(ctx context.Context, userID, materialID uuid.UUID) (*models.Reservation, bool, error) {
	material, err := s.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, false, err
	}

	if material.Type != models.MaterialPhysical {
		return nil, false, apperrors.ErrMaterialNotReservable
	}

	now := time.Now()
	reservation := &models.Reservation{
		MaterialID:      materialID,
		UserID:          userID,
		ReservationDate: now,
		ExpiryDate:      now.AddDate(0, 0, s.policy.ExpiryDays),
		Status:          models.ReservationPending,
	}

	created, err := s.reservations.CreatePending(ctx, reservation)
	if err != nil {
		return nil, false, err
	}

	if !created {
		existing, err := s.reservations.GetPending(ctx, userID, materialID)
		if err != nil {
			return nil, false, err
		}
		reservation = existing
	} else {
		logger.Info().
			Str("reservation_id", reservation.ID.String()).
			Str("material_id", materialID.String()).
			Str("user_id", userID.String()).
			Time("expiry_date", reservation.ExpiryDate).
			Msg("Reservation created")
	}

	reservation.Material = &models.MaterialSummary{
		ID:     material.ID,
		Title:  material.Title,
		Author: material.Author,
	}

	return reservation, created, nil
}

// Cancel moves a pending reservation to cancelled. Only the owner or staff
// may cancel it; a reservation already settled reports not pending.
func (s *reservationService) Cancel(ctx context.Context, reservationID, userID uuid.UUID, isStaff bool) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}

	if reservation.UserID != userID && !isStaff {
		return apperrors.ErrReservationNotFound
	}

	return s.reservations.SetStatus(ctx, reservationID, models.ReservationCancelled, nil)
}

// Complete moves a pending reservation to completed, recording when the
// material was handed over. Staff only; role checks live in the router.
func (s *reservationService) Complete(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.reservations.SetStatus(ctx, reservationID, models.ReservationCompleted, &now); err != nil {
		return nil, err
	}

	reservation.Status = models.ReservationCompleted
	reservation.CompletedDate = &now

	logger.Info().
		Str("reservation_id", reservationID.String()).
		Msg("Reservation completed")

	return reservation, nil
}

// ListByUser returns the user's reservations, most recent first
func (s *reservationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// ExpireOverdue sweeps pending reservations whose expiry date has passed
func (s *reservationService) ExpireOverdue(ctx context.Context) (int64, error) {
	swept, err := s.reservations.ExpirePending(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		logger.Info().Int64("count", swept).Msg("Expired overdue reservations")
	}

	return swept, nil
}
