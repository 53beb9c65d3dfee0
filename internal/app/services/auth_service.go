package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/auth"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// userStore is the slice of the user repository the auth service uses
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthService defines the registration, login and profile operations
type AuthService interface {
	// Register creates a reader account and issues an access token
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	// GetProfile returns the caller's own user record
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	users userStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(users userStore, jwt *auth.JWTService) AuthService {
	return &authService{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a reader account and issues an access token. New accounts
// always get the reader role; promotions go through user administration.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		RoleType: models.RoleUser,
		IsActive: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("User registered")

	return s.issueToken(user)
}

// Login verifies credentials and issues an access token. A wrong email and a
// wrong password are indistinguishable to the caller; disabled accounts are
// rejected after the password check.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueToken(user)
}

// GetProfile returns the caller's own user record
func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *authService) issueToken(user *models.User) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
