package dto

import "aimrealty.com/estateapi/internal/model"

type RegisterInput struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Phone    *string  `json:"phone"`
	Role     *string  `json:"role" binding:"omitempty,oneof=agent customer"`
	Language []string `json:"languages" binding:"omitempty,dive,oneof=en ar kur"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is what /api/auth/user answers. User is null when no
// session exists; that is a normal outcome, not an error.
type SessionResponse struct {
	User *model.User `json:"user"`
}
