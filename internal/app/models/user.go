package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email" example:"reader@biblioteca.app"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FullName  string    `json:"fullName" db:"full_name" example:"Ana Morales"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"user"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
