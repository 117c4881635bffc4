package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/tenant"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TenantRepository struct {
	DB *gorm.DB
}

var _ tenant.Repository = (*TenantRepository)(nil)

type tenantDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex:idx_tenants_code;not null"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (tenantDB) TableName() string {
	return "tenants"
}

func toDomainTenant(tdb *tenantDB) (*tenant.Tenant, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &tenant.Tenant{
		Id:        id,
		Code:      tdb.Code,
		Name:      tdb.Name,
		Active:    tdb.Active,
		CreatedAt: tdb.CreatedAt,
		UpdatedAt: tdb.UpdatedAt,
	}, nil
}

func toDBTenant(t *tenant.Tenant) *tenantDB {
	return &tenantDB{
		Id:        t.Id.String(),
		Code:      t.Code,
		Name:      t.Name,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if err := conn(ctx, r.DB).Create(toDBTenant(t)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id ulid.ULID) (*tenant.Tenant, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *TenantRepository) GetByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *TenantRepository) first(ctx context.Context, query string, args ...interface{}) (*tenant.Tenant, error) {
	var row tenantDB
	if err := conn(ctx, r.DB).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTenantNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainTenant(&row)
}
