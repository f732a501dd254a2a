package dto

import (
	"time"

	"github.com/yukikurage/apm-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func ToUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, ToUserDTO(&users[i]))
	}
	return out
}

// SignupForm is posted by the registration page
type SignupForm struct {
	Username string `form:"username" binding:"required,min=3"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	Role     string `form:"role"`
}

// LoginForm carries OAuth2 password-flow style credentials
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is returned by the programmatic login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateUserRequest is the admin partial update for a user
type UpdateUserRequest struct {
	Username    *string      `json:"username" binding:"omitempty,min=3"`
	Email       *string      `json:"email" binding:"omitempty,email"`
	Role        *models.Role `json:"role"`
	Password    *string      `json:"password"`
	NewPassword *string      `json:"new_password" binding:"omitempty,min=6"`
}
