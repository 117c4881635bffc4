package shared

import (
	"context"

	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/oklog/ulid/v2"
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// Session identifica a quien hace la solicitud. Se construye a partir del token
// y se pasa explícitamente a cada servicio.
type Session struct {
	UserID             ulid.ULID `json:"userId"`
	TenantID           ulid.ULID `json:"tenantId"`
	TenantCode         string    `json:"tenantCode"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               Role      `json:"role"`
	Approved           bool      `json:"approved"`
	MustChangePassword bool      `json:"mustChangePassword"`
}

func (s Session) IsZero() bool {
	return s.UserID == ulid.ULID{}
}

func (s Session) RequireApproved() error {
	if s.IsZero() {
		return appErrors.ErrUnauthorized
	}
	if !s.Approved {
		return appErrors.ErrUserNotApproved
	}
	return nil
}

func (s Session) RequireAdmin() error {
	if s.IsZero() {
		return appErrors.ErrUnauthorized
	}
	if !s.Role.IsAdmin() {
		return appErrors.ErrForbidden
	}
	return nil
}

// Transactor ejecuta fn dentro de una transacción de base de datos; los
// repositorios toman la transacción del contexto recibido.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTransactor ejecuta fn sin transacción.
type NoopTransactor struct{}

func (NoopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
