package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/repositories"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/auth"
	"github.com/acortes/biblioteca/internal/pkg/helpers"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// userDirectory is the slice of the user repository the administration
// service uses
type userDirectory interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter repositories.UserFilter) ([]*repositories.UserWithLoanCount, int64, error)
	Stats(ctx context.Context) (total, active int64, byRole map[models.RoleType]int64, err error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.RoleType) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// UserService defines the user administration operations
type UserService interface {
	// List returns a page of the user directory with per-user loan counts and stats
	List(ctx context.Context, filters dto.UserFilters) (*dto.UserListResponse, error)
	// Create adds an account with an explicit role
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	// UpdateRole changes a user's role; admins cannot change their own
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role models.RoleType) error
	// SetActive enables or disables an account; admins cannot disable their own
	SetActive(ctx context.Context, actorID, targetID uuid.UUID, active bool) error
}

type userService struct {
	users userDirectory
}

// NewUserService creates a new user administration service
func NewUserService(users userDirectory) UserService {
	return &userService{
		users: users,
	}
}

// List returns a page of the user directory with per-user loan counts and
// stats. Stats always cover the whole directory, not just the page.
func (s *userService) List(ctx context.Context, filters dto.UserFilters) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filters.Page, filters.PageSize)

	users, total, err := s.users.List(ctx, repositories.UserFilter{
		Search: filters.Search,
		Role:   filters.Role,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	statsTotal, active, byRole, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserListItem{
			ID:         u.ID.String(),
			Email:      u.Email,
			FullName:   u.FullName,
			RoleType:   u.RoleType,
			IsActive:   u.IsActive,
			LoansCount: int(u.LoansCount),
			CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		})
	}

	return &dto.UserListResponse{
		Users: items,
		Stats: dto.UserStats{
			Total:  statsTotal,
			Active: active,
			ByRole: byRole,
		},
		Pagination: helpers.NewPaginationInfo(total, filters.Page, limit),
	}, nil
}

// Create adds an account with an explicit role, for staff onboarding.
// Self-registration always gets the reader role; this is the admin path.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	role := models.RoleType(req.Role)
	if !models.IsValidRole(role) {
		return nil, apperrors.ErrValidationFailed
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		RoleType: role,
		IsActive: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Str("role", string(role)).
		Msg("User created by administrator")

	return user, nil
}

// UpdateRole changes a user's role. Changing one's own role is rejected so an
// admin cannot lock themselves out of administration.
func (s *userService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role models.RoleType) error {
	if !models.IsValidRole(role) {
		return apperrors.ErrValidationFailed
	}

	if actorID == targetID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return err
	}

	logger.Info().
		Str("user_id", targetID.String()).
		Str("role", string(role)).
		Msg("User role updated")

	return nil
}

// SetActive enables or disables an account. Disabling one's own account is
// rejected for the same reason role changes are.
func (s *userService) SetActive(ctx context.Context, actorID, targetID uuid.UUID, active bool) error {
	if actorID == targetID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.users.SetActive(ctx, targetID, active); err != nil {
		return err
	}

	logger.Info().
		Str("user_id", targetID.String()).
		Bool("active", active).
		Msg("User status updated")

	return nil
}
