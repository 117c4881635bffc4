package contracts

import (
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
)

type LoginRequest struct {
	TenantCode string `json:"tenantCode" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	TenantCode string `json:"tenantCode" binding:"required"`
	Name       string `json:"name" binding:"required,max=150"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
}

type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Session   shared.Session `json:"session"`
}

type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type NameUpdateRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
