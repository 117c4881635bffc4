package investment

import (
	"context"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
	"github.com/Azell-Tech/azell-web/internal/domain/product"

	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
)

// Investment es la cuenta de inversión de un usuario en un producto.
type Investment struct {
	Id            ulid.ULID `json:"id"`
	TenantId      ulid.ULID `json:"tenantId"`
	UserId        ulid.ULID `json:"userId"`
	ProductId     ulid.ULID `json:"productId"`
	Status        Status    `json:"status"`
	Principal     float64   `json:"principal"`
	AccruedYield  float64   `json:"accruedYield"`
	Currency      string    `json:"currency"`
	OpenedAt      time.Time `json:"openedAt"`
	MaturityAt    time.Time `json:"maturityAt"`
	LastAccrualAt time.Time `json:"lastAccrualAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Holding une la cuenta con su producto.
type Holding struct {
	Investment *Investment
	Product    *product.Product
}

// ToLedger expone la cuenta como producto del ledger; el capital invertido es el principal.
func (h Holding) ToLedger() ledger.Product {
	inv := h.Investment
	opened := inv.OpenedAt
	maturity := inv.MaturityAt

	lp := ledger.Product{
		ID:           inv.Id.String(),
		Status:       displayStatus(inv.Status),
		Invested:     inv.Principal,
		StartDate:    &opened,
		MaturityDate: &maturity,
		Currency:     inv.Currency,
	}
	if maturity.IsZero() {
		lp.MaturityDate = nil
	}
	if p := h.Product; p != nil {
		rate := p.AnnualRate()
		lp.Name = p.Name
		lp.Term = p.TermLabel()
		lp.Rate = p.RateLabel()
		lp.AnnualRate = &rate
		lp.NoWithdrawBonus = p.NoWithdrawBonus()
	}
	return lp
}

func displayStatus(s Status) string {
	switch s {
	case StatusActive:
		return "Activo"
	case StatusClosed:
		return "Cerrado"
	}
	return string(s)
}

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByID(ctx context.Context, tenantID, id ulid.ULID) (*Investment, error)
	// LockForUpdate lee la cuenta bloqueando la fila cuando el motor lo permite.
	LockForUpdate(ctx context.Context, tenantID, id ulid.ULID) (*Investment, error)
	ListByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]*Investment, error)
	GetActiveByUserAndProduct(ctx context.Context, tenantID, userID, productID ulid.ULID) (*Investment, error)
	ApplyContribution(ctx context.Context, id ulid.ULID, principal, yield float64, accruedAt time.Time) error
	ProductIDsByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]ulid.ULID, error)
}
