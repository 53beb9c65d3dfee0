package services

import (
	"context"
	"fmt"
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

func directoryUser(email string, role models.RoleType, createdAt time.Time) *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  "Usuario " + email,
		RoleType:  role,
		IsActive:  true,
		CreatedAt: createdAt,
	}
}

func TestListUsersPaginates(t *testing.T) {
	base := time.Now()
	var users []*models.User
	for i := 0; i < 5; i++ {
		u := directoryUser(fmt.Sprintf("lector%d@biblioteca.app", i), models.RoleUser, base.Add(time.Duration(i)*time.Minute))
		users = append(users, u)
	}
	svc := NewUserService(newFakeUserStore(users...))

	resp, err := svc.List(context.Background(), dto.UserFilters{Page: 2, PageSize: 2})
	require.NoError(t, err)

	require.Len(t, resp.Users, 2)
	// newest first, so page 2 holds the middle of the five
	assert.Equal(t, "lector2@biblioteca.app", resp.Users[0].Email)
	assert.Equal(t, "lector1@biblioteca.app", resp.Users[1].Email)

	assert.Equal(t, int64(5), resp.Pagination.TotalItems)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)

	// stats cover the whole directory, not the page
	assert.Equal(t, int64(5), resp.Stats.Total)
	assert.Equal(t, int64(5), resp.Stats.ByRole[models.RoleUser])
}

func TestListUsersFiltersByRole(t *testing.T) {
	now := time.Now()
	svc := NewUserService(newFakeUserStore(
		directoryUser("admin@biblioteca.app", models.RoleAdmin, now),
		directoryUser("lectora@biblioteca.app", models.RoleUser, now),
	))

	resp, err := svc.List(context.Background(), dto.UserFilters{Role: "admin", Page: 1, PageSize: 24})
	require.NoError(t, err)

	require.Len(t, resp.Users, 1)
	assert.Equal(t, models.RoleAdmin, resp.Users[0].RoleType)
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
}

func TestCreateUserWithRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "staff@biblioteca.app",
		Password: "libros1234",
		FullName: "Personal Nuevo",
		Role:     "librarian",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, user.RoleType)
	assert.True(t, user.IsActive)

	stored, err := store.GetByEmail(context.Background(), "staff@biblioteca.app")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "libros1234"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	existing := directoryUser("staff@biblioteca.app", models.RoleLibrarian, time.Now())
	svc := NewUserService(newFakeUserStore(existing))

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "staff@biblioteca.app",
		Password: "libros1234",
		FullName: "Personal Repetido",
		Role:     "librarian",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestCreateUserInvalidRole(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "staff@biblioteca.app",
		Password: "libros1234",
		FullName: "Personal Nuevo",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateRoleRejectsSelf(t *testing.T) {
	admin := directoryUser("admin@biblioteca.app", models.RoleAdmin, time.Now())
	svc := NewUserService(newFakeUserStore(admin))

	err := svc.UpdateRole(context.Background(), admin.ID, admin.ID, models.RoleUser)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateRole(t *testing.T) {
	admin := directoryUser("admin@biblioteca.app", models.RoleAdmin, time.Now())
	target := directoryUser("lectora@biblioteca.app", models.RoleUser, time.Now())
	store := newFakeUserStore(admin, target)
	svc := NewUserService(store)

	err := svc.UpdateRole(context.Background(), admin.ID, target.ID, models.RoleLibrarian)
	require.NoError(t, err)

	updated, err := store.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, updated.RoleType)
}

func TestSetActiveRejectsSelf(t *testing.T) {
	admin := directoryUser("admin@biblioteca.app", models.RoleAdmin, time.Now())
	svc := NewUserService(newFakeUserStore(admin))

	err := svc.SetActive(context.Background(), admin.ID, admin.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetActive(t *testing.T) {
	admin := directoryUser("admin@biblioteca.app", models.RoleAdmin, time.Now())
	target := directoryUser("lectora@biblioteca.app", models.RoleUser, time.Now())
	store := newFakeUserStore(admin, target)
	svc := NewUserService(store)

	err := svc.SetActive(context.Background(), admin.ID, target.ID, false)
	require.NoError(t, err)

	updated, err := store.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
