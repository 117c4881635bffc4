package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/product"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"
	"github.com/Azell-Tech/azell-web/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

var _ product.Repository = (*ProductRepository)(nil)

type productDB struct {
	Id                 string    `gorm:"type:varchar(26);primaryKey"`
	TenantId           string    `gorm:"type:varchar(26);uniqueIndex:idx_products_tenant_code,priority:1;not null"`
	Code               string    `gorm:"type:varchar(50);uniqueIndex:idx_products_tenant_code,priority:2;not null"`
	Name               string    `gorm:"type:varchar(150);not null"`
	TermMonths         int       `gorm:"not null;default:12"`
	AnnualRateBps      int       `gorm:"not null"`
	NoWithdrawBonusBps *int      `gorm:"default:null"`
	MinContribution    *float64  `gorm:"type:decimal(15,2)"`
	Currency           string    `gorm:"type:varchar(3);not null;default:'MXN'"`
	Active             bool      `gorm:"not null;index:idx_products_active"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (productDB) TableName() string {
	return "investment_products"
}

func toDomainProduct(pdb *productDB) (*product.Product, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	tenantID, err := pkg.ParseULID(pdb.TenantId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &product.Product{
		Id:                 id,
		TenantId:           tenantID,
		Code:               pdb.Code,
		Name:               pdb.Name,
		TermMonths:         pdb.TermMonths,
		AnnualRateBps:      pdb.AnnualRateBps,
		NoWithdrawBonusBps: pdb.NoWithdrawBonusBps,
		MinContribution:    pdb.MinContribution,
		Currency:           pdb.Currency,
		Active:             pdb.Active,
		CreatedAt:          pdb.CreatedAt,
		UpdatedAt:          pdb.UpdatedAt,
	}, nil
}

func toDBProduct(p *product.Product) *productDB {
	return &productDB{
		Id:                 p.Id.String(),
		TenantId:           p.TenantId.String(),
		Code:               p.Code,
		Name:               p.Name,
		TermMonths:         p.TermMonths,
		AnnualRateBps:      p.AnnualRateBps,
		NoWithdrawBonusBps: p.NoWithdrawBonusBps,
		MinContribution:    p.MinContribution,
		Currency:           p.Currency,
		Active:             p.Active,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if err := conn(ctx, r.DB).Create(toDBProduct(p)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	pdb := toDBProduct(p)
	result := conn(ctx, r.DB).Model(&productDB{}).
		Where("id = ? AND tenant_id = ?", pdb.Id, pdb.TenantId).
		Select("*").Omit("id", "tenant_id", "code", "created_at").
		Updates(pdb)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*product.Product, error) {
	return r.first(ctx, query.New[productDB](conn(ctx, r.DB), "investment_products").
		Tenant(tenantID.String()).
		Where("id = ?", id.String()))
}

func (r *ProductRepository) GetByCode(ctx context.Context, tenantID ulid.ULID, code string) (*product.Product, error) {
	return r.first(ctx, query.New[productDB](conn(ctx, r.DB), "investment_products").
		Tenant(tenantID.String()).
		Where("code = ?", code))
}

func (r *ProductRepository) List(ctx context.Context, tenantID ulid.ULID, activeOnly bool) ([]*product.Product, error) {
	q := query.New[productDB](conn(ctx, r.DB), "investment_products").
		Context(ctx).
		Tenant(tenantID.String()).
		WhereIf(activeOnly, "active = ?", true).
		Order("created_at DESC, id DESC")

	items, err := query.ExecuteAll(q, toDomainProduct)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return items, nil
}

// LatestActive devuelve el producto activo creado más recientemente.
func (r *ProductRepository) LatestActive(ctx context.Context, tenantID ulid.ULID) (*product.Product, error) {
	var row productDB
	err := conn(ctx, r.DB).
		Where("tenant_id = ? AND active = ?", tenantID.String(), true).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrProductNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainProduct(&row)
}

func (r *ProductRepository) first(ctx context.Context, q *query.Query[productDB]) (*product.Product, error) {
	row, err := q.Context(ctx).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrProductNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainProduct(row)
}
