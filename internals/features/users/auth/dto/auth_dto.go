package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "skripsiku_backend/internals/features/users/user/model"
)

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=3,max=255"` // email / NIM / NIP
	Password   string `json:"password" validate:"required,min=6,max=128"`
}

type LoginGoogleRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func FromUserModel(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
