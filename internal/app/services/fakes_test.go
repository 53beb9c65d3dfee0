package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/repositories"
	"github.com/acortes/biblioteca/internal/db"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
)

// fakeTxRunner runs the transaction function with a nil pgx.Tx; the fake
// stores below never touch it.
type fakeTxRunner struct{}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

// fakeMaterialStore is an in-memory materialLedger and materialReader
type fakeMaterialStore struct {
	materials map[uuid.UUID]*models.Material
}

func newFakeMaterialStore(materials ...*models.Material) *fakeMaterialStore {
	s := &fakeMaterialStore{materials: make(map[uuid.UUID]*models.Material)}
	for _, m := range materials {
		s.materials[m.ID] = m
	}
	return s
}

func (s *fakeMaterialStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	m, ok := s.materials[id]
	if !ok {
		return nil, apperrors.ErrMaterialNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *fakeMaterialStore) DecrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	m, ok := s.materials[id]
	if !ok || m.CopiesAvailable <= 0 {
		return apperrors.ErrNoCopiesAvailable
	}
	m.CopiesAvailable--
	if m.CopiesAvailable == 0 {
		m.Status = models.MaterialLoaned
	}
	return nil
}

func (s *fakeMaterialStore) IncrementAvailableTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	m, ok := s.materials[id]
	if !ok {
		return apperrors.ErrMaterialNotFound
	}
	if m.CopiesAvailable < m.CopiesTotal {
		m.CopiesAvailable++
	}
	m.Status = models.MaterialAvailable
	return nil
}

// fakeLoanStore is an in-memory loanStore that mirrors the database
// constraints: one active loan per (user, material), status guards on close
// and renew.
type fakeLoanStore struct {
	loans map[uuid.UUID]*models.Loan
}

func newFakeLoanStore(loans ...*models.Loan) *fakeLoanStore {
	s := &fakeLoanStore{loans: make(map[uuid.UUID]*models.Loan)}
	for _, l := range loans {
		s.loans[l.ID] = l
	}
	return s
}

func (s *fakeLoanStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	l, ok := s.loans[id]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	copied := *l
	return &copied, nil
}

func (s *fakeLoanStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Loan, error) {
	var out []*models.Loan
	for _, l := range s.loans {
		if l.UserID == userID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeLoanStore) CreateTx(ctx context.Context, tx pgx.Tx, loan *models.Loan) error {
	for _, l := range s.loans {
		if l.UserID == loan.UserID && l.MaterialID == loan.MaterialID && l.Status == models.LoanActive {
			return apperrors.ErrActiveLoanExists
		}
	}
	loan.ID = uuid.New()
	copied := *loan
	s.loans[loan.ID] = &copied
	return nil
}

func (s *fakeLoanStore) CloseTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, returnDate time.Time, status models.LoanStatus) error {
	l, ok := s.loans[id]
	if !ok || l.Status != models.LoanActive {
		return apperrors.ErrLoanNotActive
	}
	l.ReturnDate = &returnDate
	l.Status = status
	return nil
}

func (s *fakeLoanStore) Renew(ctx context.Context, id uuid.UUID, days int, maxRenewals int) (*models.Loan, error) {
	l, ok := s.loans[id]
	if !ok || l.Status != models.LoanActive || l.Renewals >= maxRenewals {
		return nil, apperrors.ErrRenewalLimitReached
	}
	l.DueDate = l.DueDate.AddDate(0, 0, days)
	l.Renewals++
	copied := *l
	return &copied, nil
}

// fakeReservationStore is an in-memory reservationStore that mirrors the
// one-pending-per-(user, material) constraint and the pending status guard.
type fakeReservationStore struct {
	reservations map[uuid.UUID]*models.Reservation
}

func newFakeReservationStore(reservations ...*models.Reservation) *fakeReservationStore {
	s := &fakeReservationStore{reservations: make(map[uuid.UUID]*models.Reservation)}
	for _, r := range reservations {
		s.reservations[r.ID] = r
	}
	return s
}

func (s *fakeReservationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *fakeReservationStore) GetPending(ctx context.Context, userID, materialID uuid.UUID) (*models.Reservation, error) {
	for _, r := range s.reservations {
		if r.UserID == userID && r.MaterialID == materialID && r.Status == models.ReservationPending {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperrors.ErrReservationNotFound
}

func (s *fakeReservationStore) CreatePending(ctx context.Context, reservation *models.Reservation) (bool, error) {
	for _, r := range s.reservations {
		if r.UserID == reservation.UserID && r.MaterialID == reservation.MaterialID && r.Status == models.ReservationPending {
			return false, nil
		}
	}
	reservation.ID = uuid.New()
	reservation.Status = models.ReservationPending
	copied := *reservation
	s.reservations[reservation.ID] = &copied
	return true, nil
}

func (s *fakeReservationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, r := range s.reservations {
		if r.UserID == userID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeReservationStore) SetStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus, completedDate *time.Time) error {
	r, ok := s.reservations[id]
	if !ok || r.Status != models.ReservationPending {
		return apperrors.ErrReservationNotPending
	}
	r.Status = status
	r.CompletedDate = completedDate
	return nil
}

func (s *fakeReservationStore) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	var swept int64
	for _, r := range s.reservations {
		if r.Status == models.ReservationPending && r.ExpiryDate.Before(now) {
			r.Status = models.ReservationExpired
			swept++
		}
	}
	return swept, nil
}

// fakeUserStore is an in-memory userStore and userDirectory that mirrors the
// unique email constraint.
type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.New()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) List(ctx context.Context, filter repositories.UserFilter) ([]*repositories.UserWithLoanCount, int64, error) {
	var matched []*models.User
	for _, u := range s.users {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(u.FullName), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Role != "" && string(u.RoleType) != filter.Role {
			continue
		}
		matched = append(matched, u)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Email < matched[j].Email
	})

	total := int64(len(matched))

	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	out := make([]*repositories.UserWithLoanCount, 0, len(matched))
	for _, u := range matched {
		out = append(out, &repositories.UserWithLoanCount{User: *u})
	}
	return out, total, nil
}

func (s *fakeUserStore) Stats(ctx context.Context) (total, active int64, byRole map[models.RoleType]int64, err error) {
	byRole = make(map[models.RoleType]int64)
	for _, u := range s.users {
		total++
		if u.IsActive {
			active++
		}
		byRole[u.RoleType]++
	}
	return total, active, byRole, nil
}

func (s *fakeUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role models.RoleType) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.RoleType = role
	return nil
}

func (s *fakeUserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func physicalMaterial(copies int) *models.Material {
	return &models.Material{
		ID:              uuid.New(),
		Title:           "El llano en llamas",
		Author:          "Juan Rulfo",
		Type:            models.MaterialPhysical,
		Status:          models.MaterialAvailable,
		CopiesTotal:     copies,
		CopiesAvailable: copies,
	}
}

func digitalMaterial() *models.Material {
	fileURL := "/uploads/pedro-paramo.pdf"
	return &models.Material{
		ID:      uuid.New(),
		Title:   "Pedro Páramo",
		Author:  "Juan Rulfo",
		Type:    models.MaterialDigital,
		Status:  models.MaterialAvailable,
		FileURL: &fileURL,
	}
}
