package dto

import (
	"time"

	"github.com/acortes/biblioteca/internal/app/models"
)

// RequestLoanRequest is the payload for requesting a loan on a material
type RequestLoanRequest struct {
	MaterialID string `json:"materialId" binding:"required,uuid" example:"5d9b0f3e-0b5a-4a0e-9f36-3d41f8a2b6c1"`
}

// RenewLoanResponse reports the extended due date after a renewal
type RenewLoanResponse struct {
	LoanID   string    `json:"loanId"`
	DueDate  time.Time `json:"dueDate"`
	Renewals int       `json:"renewals"`
}

// ReturnLoanResponse reports the final state after a return
type ReturnLoanResponse struct {
	LoanID     string            `json:"loanId"`
	Status     models.LoanStatus `json:"status" example:"returned"`
	ReturnDate time.Time         `json:"returnDate"`
}
