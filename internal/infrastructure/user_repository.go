package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"
	"github.com/Azell-Tech/azell-web/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

var _ user.Repository = (*UserRepository)(nil)

type userDB struct {
	Id                 string     `gorm:"type:varchar(26);primaryKey"`
	TenantId           string     `gorm:"type:varchar(26);uniqueIndex:idx_users_tenant_email,priority:1;not null"`
	Name               string     `gorm:"type:varchar(100);not null"`
	Email              string     `gorm:"type:varchar(150);uniqueIndex:idx_users_tenant_email,priority:2;not null"`
	Password           string     `gorm:"type:varchar(255);not null"`
	Role               string     `gorm:"type:varchar(20);not null;default:'USER'"`
	Active             bool       `gorm:"not null;default:false;index:idx_users_active"`
	MustChangePassword bool       `gorm:"not null;default:false"`
	EmailVerified      bool       `gorm:"not null;default:false"`
	ApprovedAt         *time.Time `gorm:"default:null"`
	RejectedAt         *time.Time `gorm:"default:null"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

func (userDB) TableName() string {
	return "users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	tenantID, err := pkg.ParseULID(udb.TenantId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &user.User{
		Id:                 id,
		TenantId:           tenantID,
		Name:               udb.Name,
		Email:              udb.Email,
		Password:           udb.Password,
		Role:               shared.Role(udb.Role),
		Active:             udb.Active,
		MustChangePassword: udb.MustChangePassword,
		EmailVerified:      udb.EmailVerified,
		ApprovedAt:         udb.ApprovedAt,
		RejectedAt:         udb.RejectedAt,
		CreatedAt:          udb.CreatedAt,
		UpdatedAt:          udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:                 u.Id.String(),
		TenantId:           u.TenantId.String(),
		Name:               u.Name,
		Email:              u.Email,
		Password:           u.Password,
		Role:               string(u.Role),
		Active:             u.Active,
		MustChangePassword: u.MustChangePassword,
		EmailVerified:      u.EmailVerified,
		ApprovedAt:         u.ApprovedAt,
		RejectedAt:         u.RejectedAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := conn(ctx, r.DB).Create(toDBUser(u)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Update guarda todas las columnas, incluidos los booleanos en false.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	result := conn(ctx, r.DB).Model(&userDB{}).
		Where("id = ? AND tenant_id = ?", udb.Id, udb.TenantId).
		Select("*").Omit("id", "tenant_id", "created_at").
		Updates(udb)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*user.User, error) {
	return r.first(ctx, "tenant_id = ? AND id = ?", tenantID.String(), id.String())
}

func (r *UserRepository) GetByEmail(ctx context.Context, tenantID ulid.ULID, email string) (*user.User, error) {
	return r.first(ctx, "tenant_id = ? AND email = ?", tenantID.String(), email)
}

func (r *UserRepository) List(ctx context.Context, tenantID ulid.ULID, filter user.Filter, pagination *pkg.PaginationParams) ([]*user.User, int64, error) {
	q := query.New[userDB](conn(ctx, r.DB), "users").
		Context(ctx).
		Tenant(tenantID.String()).
		WhereIf(filter.Active != nil, "active = ?", filter.Active != nil && *filter.Active).
		WhereIf(filter.Rejected != nil && *filter.Rejected, "rejected_at IS NOT NULL").
		WhereIf(filter.Rejected != nil && !*filter.Rejected, "rejected_at IS NULL").
		Order("created_at DESC, id DESC")

	items, total, err := query.Execute(q, pagination, toDomainUser)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return items, total, nil
}

func (r *UserRepository) first(ctx context.Context, where string, args ...interface{}) (*user.User, error) {
	var udb userDB
	if err := conn(ctx, r.DB).Where(where, args...).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}
