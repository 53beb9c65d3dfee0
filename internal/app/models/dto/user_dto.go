package dto

import "github.com/acortes/biblioteca/internal/app/models"

// UserFilters carries the optional user listing filters
type UserFilters struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin librarian user"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=24"`
}

// CreateUserRequest is the payload for an admin creating an account directly
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"nuevo@biblioteca.app"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required" example:"Nuevo Usuario"`
	Role     string `json:"role" binding:"required,oneof=admin librarian user" example:"user"`
}

// UserListItem is one row of the user administration listing
type UserListItem struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	FullName   string          `json:"fullName"`
	RoleType   models.RoleType `json:"roleType"`
	IsActive   bool            `json:"isActive"`
	LoansCount int             `json:"loansCount"`
	CreatedAt  string          `json:"createdAt"`
}

// UserStats aggregates counts over the user directory
type UserStats struct {
	Total  int64                     `json:"total"`
	Active int64                     `json:"active"`
	ByRole map[models.RoleType]int64 `json:"byRole"`
}

// UserListResponse is the combined listing plus stats payload
type UserListResponse struct {
	Users      []UserListItem `json:"users"`
	Stats      UserStats      `json:"stats"`
	Pagination PaginationInfo `json:"pagination"`
}

// UpdateUserRoleRequest is the payload for changing a user's role
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin librarian user" example:"librarian"`
}

// UpdateUserActiveRequest is the payload for activating or deactivating a user
type UpdateUserActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
