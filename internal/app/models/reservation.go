package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation represents a user's intent to borrow a material once available,
// based on the 'reservations' table. At most one pending reservation may exist
// per (user, material) pair; the database enforces this with a partial unique
// index and creation is idempotent against it.
type Reservation struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	MaterialID      uuid.UUID         `json:"materialId" db:"material_id"`
	UserID          uuid.UUID         `json:"userId" db:"user_id"`
	ReservationDate time.Time         `json:"reservationDate" db:"reservation_date"`
	ExpiryDate      time.Time         `json:"expiryDate" db:"expiry_date"`
	CompletedDate   *time.Time        `json:"completedDate,omitempty" db:"completed_date"`
	Status          ReservationStatus `json:"status" db:"status" example:"pending"`
	// Relation, no db tag
	Material *MaterialSummary `json:"material,omitempty"`
}
