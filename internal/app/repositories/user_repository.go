package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/dberrors"
)

// UserFilter carries the optional filters for user listings
type UserFilter struct {
	Search string
	Role   string
	Offset int
	Limit  int
}

// UserWithLoanCount pairs a user with the number of loans on their record
type UserWithLoanCount struct {
	models.User
	LoansCount int64
}

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, full_name, role_type, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.FullName,
		user.RoleType,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

const userColumns = `id, email, password, full_name, role_type, is_active, created_at, updated_at`

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.RoleType,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, email), &user); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &user); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// List retrieves users matching the filter, newest first, each with their
// total loan count, plus the total match count for pagination.
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]*UserWithLoanCount, int64, error) {
	var conditions []string
	var args []interface{}

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := addArg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(u.full_name ILIKE %[1]s OR u.email ILIKE %[1]s)", p))
	}
	if filter.Role != "" {
		conditions = append(conditions, "u.role_type = "+addArg(filter.Role))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := `
		SELECT u.id, u.email, u.password, u.full_name, u.role_type, u.is_active,
			u.created_at, u.updated_at,
			(SELECT COUNT(*) FROM loans l WHERE l.user_id = u.id) AS loans_count
		FROM users u` + where + `
		ORDER BY u.created_at DESC
		LIMIT ` + addArg(filter.Limit) + ` OFFSET ` + addArg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*UserWithLoanCount
	for rows.Next() {
		var u UserWithLoanCount
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Password,
			&u.FullName,
			&u.RoleType,
			&u.IsActive,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.LoansCount,
		)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Stats returns the user totals broken down by role and activity
func (r *UserRepository) Stats(ctx context.Context) (total, active int64, byRole map[models.RoleType]int64, err error) {
	byRole = make(map[models.RoleType]int64)

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users`,
	).Scan(&total, &active)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("error counting users: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT role_type, COUNT(*) FROM users GROUP BY role_type`)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("error counting users by role: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role models.RoleType
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return 0, 0, nil, err
		}
		byRole[role] = count
	}
	if err := rows.Err(); err != nil {
		return 0, 0, nil, err
	}

	return total, active, byRole, nil
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.RoleType) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET role_type = $2, updated_at = NOW() WHERE id = $1`,
		id, role,
	)
	if err != nil {
		return fmt.Errorf("error updating user role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetActive enables or disables a user account
func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
