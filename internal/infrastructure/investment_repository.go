package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvestmentRepository struct {
	DB *gorm.DB
}

var _ investment.Repository = (*InvestmentRepository)(nil)

type investmentDB struct {
	Id            string    `gorm:"type:varchar(26);primaryKey"`
	TenantId      string    `gorm:"type:varchar(26);index:idx_investments_tenant_user,priority:1;not null"`
	UserId        string    `gorm:"type:varchar(26);index:idx_investments_tenant_user,priority:2;not null"`
	ProductId     string    `gorm:"type:varchar(26);index:idx_investments_product;not null"`
	Status        string    `gorm:"type:varchar(10);not null"`
	Principal     float64   `gorm:"type:decimal(15,2);not null;default:0"`
	AccruedYield  float64   `gorm:"type:decimal(15,2);not null;default:0"`
	Currency      string    `gorm:"type:varchar(3);not null"`
	OpenedAt      time.Time `gorm:"not null"`
	MaturityAt    time.Time `gorm:"not null"`
	LastAccrualAt time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (investmentDB) TableName() string {
	return "investment_accounts"
}

func toDomainInvestment(idb *investmentDB) (*investment.Investment, error) {
	ids, err := parseULIDs(idb.Id, idb.TenantId, idb.UserId, idb.ProductId)
	if err != nil {
		return nil, err
	}
	return &investment.Investment{
		Id:            ids[0],
		TenantId:      ids[1],
		UserId:        ids[2],
		ProductId:     ids[3],
		Status:        investment.Status(idb.Status),
		Principal:     idb.Principal,
		AccruedYield:  idb.AccruedYield,
		Currency:      idb.Currency,
		OpenedAt:      idb.OpenedAt,
		MaturityAt:    idb.MaturityAt,
		LastAccrualAt: idb.LastAccrualAt,
		CreatedAt:     idb.CreatedAt,
		UpdatedAt:     idb.UpdatedAt,
	}, nil
}

func toDBInvestment(inv *investment.Investment) *investmentDB {
	return &investmentDB{
		Id:            inv.Id.String(),
		TenantId:      inv.TenantId.String(),
		UserId:        inv.UserId.String(),
		ProductId:     inv.ProductId.String(),
		Status:        string(inv.Status),
		Principal:     inv.Principal,
		AccruedYield:  inv.AccruedYield,
		Currency:      inv.Currency,
		OpenedAt:      inv.OpenedAt,
		MaturityAt:    inv.MaturityAt,
		LastAccrualAt: inv.LastAccrualAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investment.Investment) error {
	if err := conn(ctx, r.DB).Create(toDBInvestment(inv)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*investment.Investment, error) {
	return r.first(conn(ctx, r.DB), "tenant_id = ? AND id = ?", tenantID.String(), id.String())
}

// LockForUpdate usa SELECT ... FOR UPDATE en postgres; sqlite ya serializa las escrituras.
func (r *InvestmentRepository) LockForUpdate(ctx context.Context, tenantID, id ulid.ULID) (*investment.Investment, error) {
	db := conn(ctx, r.DB)
	if !IsSQLite(r.DB) {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(db, "tenant_id = ? AND id = ?", tenantID.String(), id.String())
}

func (r *InvestmentRepository) ListByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]*investment.Investment, error) {
	var rows []investmentDB
	err := conn(ctx, r.DB).
		Where("tenant_id = ? AND user_id = ?", tenantID.String(), userID.String()).
		Order("opened_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*investment.Investment, 0, len(rows))
	for i := range rows {
		inv, err := toDomainInvestment(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *InvestmentRepository) GetActiveByUserAndProduct(ctx context.Context, tenantID, userID, productID ulid.ULID) (*investment.Investment, error) {
	return r.first(conn(ctx, r.DB).Order("opened_at DESC"),
		"tenant_id = ? AND user_id = ? AND product_id = ? AND status = ?",
		tenantID.String(), userID.String(), productID.String(), string(investment.StatusActive))
}

// ApplyContribution suma en la propia sentencia para no perder aportes concurrentes.
func (r *InvestmentRepository) ApplyContribution(ctx context.Context, id ulid.ULID, principal, yield float64, accruedAt time.Time) error {
	result := conn(ctx, r.DB).Model(&investmentDB{}).
		Where("id = ?", id.String()).
		UpdateColumns(map[string]interface{}{
			"principal":       gorm.Expr("principal + ?", principal),
			"accrued_yield":   gorm.Expr("accrued_yield + ?", yield),
			"last_accrual_at": accruedAt,
			"updated_at":      accruedAt,
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrInvestmentNotFound
	}
	return nil
}

func (r *InvestmentRepository) ProductIDsByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]ulid.ULID, error) {
	var raw []string
	err := conn(ctx, r.DB).Model(&investmentDB{}).
		Where("tenant_id = ? AND user_id = ? AND status = ?", tenantID.String(), userID.String(), string(investment.StatusActive)).
		Distinct().
		Pluck("product_id", &raw).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	ids := make([]ulid.ULID, 0, len(raw))
	for _, s := range raw {
		id, err := pkg.ParseULID(s)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *InvestmentRepository) first(db *gorm.DB, where string, args ...interface{}) (*investment.Investment, error) {
	var row investmentDB
	if err := db.Where(where, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrInvestmentNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainInvestment(&row)
}

func parseULIDs(values ...string) ([]ulid.ULID, error) {
	out := make([]ulid.ULID, len(values))
	for i, v := range values {
		id, err := pkg.ParseULID(v)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
		out[i] = id
	}
	return out, nil
}
