package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/db"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// LoanPolicy carries the lending policy parameters injected at startup
type LoanPolicy struct {
	DaysDuration int
	MaxRenewals  int
}

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// loanStore is the slice of the loan repository the loan service uses
type loanStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error)
	CreateTx(ctx context.Context, tx pgx.Tx, loan *models.Loan) error
	CloseTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, returnDate time.Time, status models.LoanStatus) error
	Renew(ctx context.Context, id uuid.UUID, days int, maxRenewals int) (*models.Loan, error)
}

// materialLedger is the slice of the material repository that adjusts inventory
type materialLedger interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error)
	DecrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	IncrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// LoanService defines the loan lifecycle operations
type LoanService interface {
	// RequestLoan borrows a physical material for the caller
	RequestLoan(ctx context.Context, userID, materialID uuid.UUID) (*models.Loan, error)
	// RenewLoan extends the due date of the caller's active loan
	RenewLoan(ctx context.Context, userID, loanID uuid.UUID) (*models.Loan, error)
	// ReturnLoan finishes a loan and puts the copy back on the shelf
	ReturnLoan(ctx context.Context, loanID, userID uuid.UUID, isStaff bool) (*models.Loan, error)
	// ListByUser returns the user's loan history, most recent first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error)
}

type loanService struct {
	txRunner  TxRunner
	loans     loanStore
	materials materialLedger
	policy    LoanPolicy
}

// NewLoanService creates a new loan service
func NewLoanService(txRunner TxRunner, loans loanStore, materials materialLedger, policy LoanPolicy) LoanService {
	return &loanService{
		txRunner:  txRunner,
		loans:     loans,
		materials: materials,
		policy:    policy,
	}
}

// RequestLoan borrows a physical material for the caller. The loan row and
// the inventory decrement commit in one transaction, so a failed decrement
// (no copies left) or a duplicate active loan leaves no partial state.
func (s *loanService) RequestLoan(ctx context.Context, userID, materialID uuid.UUID) (*models.Loan, error) {
	material, err := s.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	if material.Type != models.MaterialPhysical {
		return nil, apperrors.ErrMaterialNotLoanable
	}

	now := time.Now()
	loan := &models.Loan{
		MaterialID: materialID,
		UserID:     userID,
		LoanDate:   now,
		DueDate:    now.AddDate(0, 0, s.policy.DaysDuration),
		Renewals:   0,
		Status:     models.LoanActive,
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.loans.CreateTx(ctx, tx, loan); err != nil {
			return err
		}
		return s.materials.DecrementAvailableTx(ctx, tx, materialID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("loan_id", loan.ID.String()).
		Str("material_id", materialID.String()).
		Str("user_id", userID.String()).
		Time("due_date", loan.DueDate).
		Msg("Loan created")

	loan.Material = &models.MaterialSummary{
		ID:     material.ID,
		Title:  material.Title,
		Author: material.Author,
	}

	return loan, nil
}

// RenewLoan extends the due date of an active loan by the policy's loan
// duration, counted from the current due date rather than from today. The
// loan must belong to the caller and have renewals left.
func (s *loanService) RenewLoan(ctx context.Context, userID, loanID uuid.UUID) (*models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	// A foreign loan is reported as not found rather than forbidden
	if loan.UserID != userID {
		return nil, apperrors.ErrLoanNotFound
	}

	if loan.Status != models.LoanActive {
		return nil, apperrors.ErrLoanNotActive
	}
	if loan.Renewals >= s.policy.MaxRenewals {
		return nil, apperrors.ErrRenewalLimitReached
	}

	renewed, err := s.loans.Renew(ctx, loanID, s.policy.DaysDuration, s.policy.MaxRenewals)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("loan_id", loanID.String()).
		Int("renewals", renewed.Renewals).
		Time("due_date", renewed.DueDate).
		Msg("Loan renewed")

	return renewed, nil
}

// ReturnLoan finishes an active loan. The final status is overdue when the
// return happens after the due date, returned otherwise. Closing the loan and
// restoring the copy commit in one transaction; only the loan owner or staff
// may return it.
func (s *loanService) ReturnLoan(ctx context.Context, loanID, userID uuid.UUID, isStaff bool) (*models.Loan, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.UserID != userID && !isStaff {
		return nil, apperrors.ErrLoanNotFound
	}

	if loan.Status != models.LoanActive {
		return nil, apperrors.ErrLoanNotActive
	}

	now := time.Now()
	status := models.LoanReturned
	if now.After(loan.DueDate) {
		status = models.LoanOverdue
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.loans.CloseTx(ctx, tx, loanID, now, status); err != nil {
			return err
		}
		return s.materials.IncrementAvailableTx(ctx, tx, loan.MaterialID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("loan_id", loanID.String()).
		Str("status", string(status)).
		Msg("Loan returned")

	loan.ReturnDate = &now
	loan.Status = status

	return loan, nil
}

// ListByUser returns the user's loan history, most recent first
func (s *loanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error) {
	return s.loans.ListByUser(ctx, userID)
}
