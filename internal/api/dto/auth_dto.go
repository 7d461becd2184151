package dto

import (
	"time"

	"github.com/noorskin/storefront/internal/domain"
)

// ManagerLoginRequest payload.
type ManagerLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ManagerLoginResponse is returned on successful login.
type ManagerLoginResponse struct {
	User      *domain.ManagerUser `json:"user"`
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
}

// ProfileUpdateRequest payload. Only the listed fields may change.
type ProfileUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,min=6,max=20"`
	Department *string `json:"department" validate:"omitempty,max=120"`
	Avatar     *string `json:"avatar" validate:"omitempty,url"`
}

// SessionResponse describes the console session state.
type SessionResponse struct {
	Hydrated        bool                `json:"hydrated"`
	IsAuthenticated bool                `json:"isAuthenticated"`
	User            *domain.ManagerUser `json:"user"`
}

// RoleResponse is one row of the permission table.
type RoleResponse struct {
	Role        domain.Role         `json:"role"`
	Label       string              `json:"label"`
	Permissions []domain.Permission `json:"permissions"`
}
