package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
)

var testReservationPolicy = ReservationPolicy{ExpiryDays: 5}

func newReservationService(reservations *fakeReservationStore, materials *fakeMaterialStore) ReservationService {
	return NewReservationService(reservations, materials, testReservationPolicy)
}

func TestCreateReservation(t *testing.T) {
	material := physicalMaterial(1)
	material.CopiesAvailable = 0
	svc := newReservationService(newFakeReservationStore(), newFakeMaterialStore(material))
	userID := uuid.New()

	reservation, created, err := svc.Create(context.Background(), userID, material.ID)
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, models.ReservationPending, reservation.Status)
	assert.Equal(t, userID, reservation.UserID)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 5), reservation.ExpiryDate, time.Minute)
	require.NotNil(t, reservation.Material)
	assert.Equal(t, material.Title, reservation.Material.Title)
}

func TestCreateReservationIdempotent(t *testing.T) {
	material := physicalMaterial(1)
	svc := newReservationService(newFakeReservationStore(), newFakeMaterialStore(material))
	userID := uuid.New()

	first, created, err := svc.Create(context.Background(), userID, material.ID)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Create(context.Background(), userID, material.ID)
	require.NoError(t, err)

	// The repeated request reports the existing reservation, not a failure
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateReservationLeavesInventoryAlone(t *testing.T) {
	material := physicalMaterial(2)
	materials := newFakeMaterialStore(material)
	svc := newReservationService(newFakeReservationStore(), materials)

	_, _, err := svc.Create(context.Background(), uuid.New(), material.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, materials.materials[material.ID].CopiesAvailable)
	assert.Equal(t, models.MaterialAvailable, materials.materials[material.ID].Status)
}

func TestCreateReservationRejectsDigitalMaterial(t *testing.T) {
	material := digitalMaterial()
	svc := newReservationService(newFakeReservationStore(), newFakeMaterialStore(material))

	_, _, err := svc.Create(context.Background(), uuid.New(), material.ID)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotReservable)
}

func TestCreateReservationUnknownMaterial(t *testing.T) {
	svc := newReservationService(newFakeReservationStore(), newFakeMaterialStore())

	_, _, err := svc.Create(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestCancelReservation(t *testing.T) {
	userID := uuid.New()
	reservation := &models.Reservation{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.ReservationPending,
	}
	store := newFakeReservationStore(reservation)
	svc := newReservationService(store, newFakeMaterialStore())

	err := svc.Cancel(context.Background(), reservation.ID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, store.reservations[reservation.ID].Status)
}

func TestCancelReservationAlreadySettled(t *testing.T) {
	userID := uuid.New()
	reservation := &models.Reservation{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.ReservationExpired,
	}
	svc := newReservationService(newFakeReservationStore(reservation), newFakeMaterialStore())

	err := svc.Cancel(context.Background(), reservation.ID, userID, false)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotPending)
}

func TestCancelReservationOfAnotherUserHidden(t *testing.T) {
	reservation := &models.Reservation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: models.ReservationPending,
	}
	svc := newReservationService(newFakeReservationStore(reservation), newFakeMaterialStore())

	err := svc.Cancel(context.Background(), reservation.ID, uuid.New(), false)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
}

func TestCancelReservationStaffCanCancelForOthers(t *testing.T) {
	reservation := &models.Reservation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: models.ReservationPending,
	}
	store := newFakeReservationStore(reservation)
	svc := newReservationService(store, newFakeMaterialStore())

	err := svc.Cancel(context.Background(), reservation.ID, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, store.reservations[reservation.ID].Status)
}

func TestCompleteReservation(t *testing.T) {
	reservation := &models.Reservation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: models.ReservationPending,
	}
	store := newFakeReservationStore(reservation)
	svc := newReservationService(store, newFakeMaterialStore())

	completed, err := svc.Complete(context.Background(), reservation.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ReservationCompleted, completed.Status)
	require.NotNil(t, completed.CompletedDate)
	assert.Equal(t, models.ReservationCompleted, store.reservations[reservation.ID].Status)
}

func TestCompleteReservationAlreadySettled(t *testing.T) {
	reservation := &models.Reservation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: models.ReservationCancelled,
	}
	svc := newReservationService(newFakeReservationStore(reservation), newFakeMaterialStore())

	_, err := svc.Complete(context.Background(), reservation.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotPending)
}

func TestExpireOverdue(t *testing.T) {
	overdue := &models.Reservation{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ExpiryDate: time.Now().AddDate(0, 0, -1),
		Status:     models.ReservationPending,
	}
	current := &models.Reservation{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		ExpiryDate: time.Now().AddDate(0, 0, 3),
		Status:     models.ReservationPending,
	}
	store := newFakeReservationStore(overdue, current)
	svc := newReservationService(store, newFakeMaterialStore())

	swept, err := svc.ExpireOverdue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), swept)
	assert.Equal(t, models.ReservationExpired, store.reservations[overdue.ID].Status)
	assert.Equal(t, models.ReservationPending, store.reservations[current.ID].Status)
}
