package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/dberrors"
)

// ActiveLoanConstraint is the partial unique index that allows at most one
// active loan per user and material.
const ActiveLoanConstraint = "loans_one_active_per_user_material"

// LoanRepository handles database operations for loans
type LoanRepository struct {
	db *pgxpool.Pool
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{
		db: db,
	}
}

// GetByID retrieves a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	query := `
		SELECT id, material_id, user_id, loan_date, due_date, return_date, renewals, status
		FROM loans
		WHERE id = $1
	`

	var loan models.Loan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&loan.ID,
		&loan.MaterialID,
		&loan.UserID,
		&loan.LoanDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.Renewals,
		&loan.Status,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("error retrieving loan: %w", err)
	}

	return &loan, nil
}

// ListByUser retrieves all loans of a user, most recent first, with a summary
// of the loaned material.
func (r *LoanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error) {
	query := `
		SELECT l.id, l.material_id, l.user_id, l.loan_date, l.due_date, l.return_date,
			l.renewals, l.status, m.title, m.author
		FROM loans l
		JOIN materials m ON m.id = l.material_id
		WHERE l.user_id = $1
		ORDER BY l.loan_date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*models.Loan
	for rows.Next() {
		var loan models.Loan
		var summary models.MaterialSummary
		err := rows.Scan(
			&loan.ID,
			&loan.MaterialID,
			&loan.UserID,
			&loan.LoanDate,
			&loan.DueDate,
			&loan.ReturnDate,
			&loan.Renewals,
			&loan.Status,
			&summary.Title,
			&summary.Author,
		)
		if err != nil {
			return nil, err
		}
		summary.ID = loan.MaterialID
		loan.Material = &summary
		loans = append(loans, &loan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return loans, nil
}

// CreateTx inserts a new active loan inside a transaction. The partial unique
// index on (user_id, material_id) for active loans turns a concurrent
// duplicate request into a unique violation, reported as ErrActiveLoanExists.
func (r *LoanRepository) CreateTx(ctx context.Context, tx pgx.Tx, loan *models.Loan) error {
	query := `
		INSERT INTO loans (material_id, user_id, loan_date, due_date, renewals, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		loan.MaterialID,
		loan.UserID,
		loan.LoanDate,
		loan.DueDate,
		loan.Renewals,
		loan.Status,
	).Scan(&loan.ID)
	if err != nil {
		if dberrors.IsUniqueViolationOn(err, ActiveLoanConstraint) {
			return apperrors.ErrActiveLoanExists
		}
		return fmt.Errorf("error creating loan: %w", err)
	}

	return nil
}

// CloseTx finishes an active loan inside a return transaction, recording the
// return date and the final status. The status guard makes concurrent returns
// of the same loan settle exactly one of them.
func (r *LoanRepository) CloseTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, returnDate time.Time, status models.LoanStatus) error {
	query := `
		UPDATE loans
		SET return_date = $2, status = $3
		WHERE id = $1 AND status = 'active'
	`

	cmdTag, err := tx.Exec(ctx, query, id, returnDate, status)
	if err != nil {
		return fmt.Errorf("error closing loan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLoanNotActive
	}

	return nil
}

// Renew extends the due date of an active loan by the given number of days,
// counted from the current due date, and bumps the renewal counter. The
// renewal cap is enforced in the same UPDATE so concurrent renewals cannot
// exceed it.
func (r *LoanRepository) Renew(ctx context.Context, id uuid.UUID, days int, maxRenewals int) (*models.Loan, error) {
	query := `
		UPDATE loans
		SET due_date = due_date + make_interval(days => $2),
			renewals = renewals + 1
		WHERE id = $1 AND status = 'active' AND renewals < $3
		RETURNING id, material_id, user_id, loan_date, due_date, return_date, renewals, status
	`

	var loan models.Loan
	err := r.db.QueryRow(ctx, query, id, days, maxRenewals).Scan(
		&loan.ID,
		&loan.MaterialID,
		&loan.UserID,
		&loan.LoanDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.Renewals,
		&loan.Status,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			// Not active or at the cap; the caller distinguishes via GetByID
			return nil, apperrors.ErrRenewalLimitReached
		}
		return nil, fmt.Errorf("error renewing loan: %w", err)
	}

	return &loan, nil
}
