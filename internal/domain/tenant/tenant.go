package tenant

import (
	"context"
	"time"

	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/oklog/ulid/v2"
)

type Tenant struct {
	Id        ulid.ULID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id ulid.ULID) (*Tenant, error)
	GetByCode(ctx context.Context, code string) (*Tenant, error)
}

// ResolveActive busca la organización por código y rechaza las inactivas.
func ResolveActive(ctx context.Context, repo Repository, code string) (*Tenant, error) {
	if code == "" {
		return nil, appErrors.NewValidationError("tenantCode", "La organización es obligatoria")
	}
	t, err := repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, appErrors.ErrTenantNotFound
	}
	return t, nil
}
