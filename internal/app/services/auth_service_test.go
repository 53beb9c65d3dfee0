package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "biblioteca.app",
	})
}

func registeredUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hashed,
		FullName: "Lectora de Prueba",
		RoleType: models.RoleUser,
		IsActive: true,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	user := registeredUser(t, "lectora@biblioteca.app", "libros1234")
	jwtSvc := testJWTService()
	svc := NewAuthService(newFakeUserStore(user), jwtSvc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "lectora@biblioteca.app",
		Password: "libros1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := jwtSvc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, string(models.RoleUser), claims.RoleType)
}

func TestLoginWrongPassword(t *testing.T) {
	user := registeredUser(t, "lectora@biblioteca.app", "libros1234")
	svc := NewAuthService(newFakeUserStore(user), testJWTService())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "lectora@biblioteca.app",
		Password: "equivocada",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testJWTService())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@biblioteca.app",
		Password: "libros1234",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	user := registeredUser(t, "lectora@biblioteca.app", "libros1234")
	user.IsActive = false
	svc := NewAuthService(newFakeUserStore(user), testJWTService())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "lectora@biblioteca.app",
		Password: "libros1234",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRegisterCreatesReader(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testJWTService())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "nueva@biblioteca.app",
		Password: "libros1234",
		FullName: "Lectora Nueva",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	created, err := store.GetByEmail(context.Background(), "nueva@biblioteca.app")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.RoleType)
	assert.True(t, created.IsActive)
	assert.True(t, auth.CheckPassword(created.Password, "libros1234"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	user := registeredUser(t, "lectora@biblioteca.app", "libros1234")
	svc := NewAuthService(newFakeUserStore(user), testJWTService())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "lectora@biblioteca.app",
		Password: "otra1234",
		FullName: "Otra Lectora",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestGetProfile(t *testing.T) {
	user := registeredUser(t, "lectora@biblioteca.app", "libros1234")
	svc := NewAuthService(newFakeUserStore(user), testJWTService())

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
}
