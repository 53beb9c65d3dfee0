package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds every repository used by the application
type Repositories struct {
	Users        *UserRepository
	Categories   *CategoryRepository
	Materials    *MaterialRepository
	Loans        *LoanRepository
	Reservations *ReservationRepository
	Downloads    *DownloadRepository
}

// NewRepositories creates all repositories over a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Categories:   NewCategoryRepository(db),
		Materials:    NewMaterialRepository(db),
		Loans:        NewLoanRepository(db),
		Reservations: NewReservationRepository(db),
		Downloads:    NewDownloadRepository(db),
	}
}
