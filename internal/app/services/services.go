package services

import (
	"github.com/acortes/biblioteca/internal/app/repositories"
	"github.com/acortes/biblioteca/internal/config"
	"github.com/acortes/biblioteca/internal/db"
	"github.com/acortes/biblioteca/internal/pkg/auth"
)

// Services holds every service used by the application
type Services struct {
	Auth         AuthService
	Catalog      CatalogService
	Loans        LoanService
	Reservations ReservationService
	Digital      DigitalService
	Users        UserService
}

// NewServices wires all services over the repositories and shared dependencies
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, jwtService *auth.JWTService, cfg *config.Config) *Services {
	loanPolicy := LoanPolicy{
		DaysDuration: cfg.Loans.DaysDuration,
		MaxRenewals:  cfg.Loans.MaxRenewals,
	}
	reservationPolicy := ReservationPolicy{
		ExpiryDays: cfg.Loans.ReservationExpiryDays,
	}

	return &Services{
		Auth:         NewAuthService(repos.Users, jwtService),
		Catalog:      NewCatalogService(repos.Materials, repos.Categories),
		Loans:        NewLoanService(database, repos.Loans, repos.Materials, loanPolicy),
		Reservations: NewReservationService(repos.Reservations, repos.Materials, reservationPolicy),
		Digital:      NewDigitalService(repos.Materials, repos.Downloads),
		Users:        NewUserService(repos.Users),
	}
}
