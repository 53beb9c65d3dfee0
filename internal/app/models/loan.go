package models

import (
	"time"

	"github.com/google/uuid"
)

// Loan represents a physical material borrowed by a user, based on the 'loans' table.
// At most one active loan may exist per (user, material) pair; the database
// enforces this with a partial unique index.
type Loan struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	MaterialID uuid.UUID  `json:"materialId" db:"material_id"`
	UserID     uuid.UUID  `json:"userId" db:"user_id"`
	LoanDate   time.Time  `json:"loanDate" db:"loan_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Renewals   int        `json:"renewals" db:"renewals" example:"0"`
	Status     LoanStatus `json:"status" db:"status" example:"active"`
	// Relation, no db tag
	Material *MaterialSummary `json:"material,omitempty"`
}
