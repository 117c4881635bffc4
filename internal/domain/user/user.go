package user

import (
	"context"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type User struct {
	Id                 ulid.ULID   `json:"id"`
	TenantId           ulid.ULID   `json:"tenantId"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Password           string      `json:"-"`
	Role               shared.Role `json:"role"`
	Active             bool        `json:"active"`
	MustChangePassword bool        `json:"mustChangePassword"`
	EmailVerified      bool        `json:"emailVerified"`
	ApprovedAt         *time.Time  `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time  `json:"rejectedAt,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// Status expone el estado de aprobación tal como lo ve el backoffice.
func (u *User) Status() string {
	switch {
	case u.Active:
		return StatusApproved
	case u.IsRejected():
		return StatusRejected
	}
	return StatusPending
}

// IsRejected indica que un administrador rechazó o dio de baja al usuario.
func (u *User) IsRejected() bool {
	return !u.Active && u.RejectedAt != nil
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Filter struct {
	Active   *bool
	Rejected *bool
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, tenantID, id ulid.ULID) (*User, error)
	GetByEmail(ctx context.Context, tenantID ulid.ULID, email string) (*User, error)
	List(ctx context.Context, tenantID ulid.ULID, filter Filter, pagination *pkg.PaginationParams) ([]*User, int64, error)
}
