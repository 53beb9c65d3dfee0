package dto

import "github.com/acortes/biblioteca/internal/app/models"

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@biblioteca.app"`
	Password string `json:"password" binding:"required,min=8" example:"s3cure-pass"`
	FullName string `json:"fullName" binding:"required" example:"Ana Morales"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@biblioteca.app"`
	Password string `json:"password" binding:"required" example:"s3cure-pass"`
}

// TokenResponse carries the issued access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// ProfileResponse is the caller's own user record
type ProfileResponse struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"fullName"`
	RoleType models.RoleType `json:"roleType"`
}

// FromUser converts a models.User to a ProfileResponse
func FromUser(user *models.User) ProfileResponse {
	if user == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		RoleType: user.RoleType,
	}
}
