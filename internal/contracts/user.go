package contracts

import (
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/user"
)

// UserResponse es la vista del usuario para el backoffice.
type UserResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	MustChangePassword bool       `json:"mustChangePassword"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:                 u.Id.String(),
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		Status:             u.Status(),
		MustChangePassword: u.MustChangePassword,
		ApprovedAt:         u.ApprovedAt,
		RejectedAt:         u.RejectedAt,
		CreatedAt:          u.CreatedAt,
	}
}

func NewUserResponses(users []*user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
