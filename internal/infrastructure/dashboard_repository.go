package infrastructure

import (
	"context"

	"github.com/Azell-Tech/azell-web/internal/domain/dashboard"
	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

// LoadSnapshot lee cuentas y movimientos dentro de la misma transacción.
func (r *DashboardRepository) LoadSnapshot(ctx context.Context, tenantID, userID ulid.ULID) (*dashboard.Snapshot, error) {
	snapshot := &dashboard.Snapshot{}

	err := NewTransactor(r.DB).WithinTransaction(ctx, func(ctx context.Context) error {
		holdings, err := r.holdings(ctx, tenantID, userID)
		if err != nil {
			return err
		}
		snapshot.Holdings = holdings

		movements := &TransactionRepository{DB: r.DB}
		txs, err := movements.AllByUser(ctx, tenantID, userID)
		if err != nil {
			return err
		}
		snapshot.Transactions = txs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *DashboardRepository) holdings(ctx context.Context, tenantID, userID ulid.ULID) ([]investment.Holding, error) {
	var accounts []investmentDB
	err := conn(ctx, r.DB).
		Where("tenant_id = ? AND user_id = ?", tenantID.String(), userID.String()).
		Order("opened_at DESC, id DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if len(accounts) == 0 {
		return []investment.Holding{}, nil
	}

	productIDs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		productIDs = append(productIDs, a.ProductId)
	}

	var products []productDB
	err = conn(ctx, r.DB).
		Where("tenant_id = ? AND id IN ?", tenantID.String(), productIDs).
		Find(&products).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	byID := make(map[string]*product.Product, len(products))
	for i := range products {
		p, err := toDomainProduct(&products[i])
		if err != nil {
			return nil, err
		}
		byID[products[i].Id] = p
	}

	out := make([]investment.Holding, 0, len(accounts))
	for i := range accounts {
		inv, err := toDomainInvestment(&accounts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, investment.Holding{Investment: inv, Product: byID[accounts[i].ProductId]})
	}
	return out, nil
}
