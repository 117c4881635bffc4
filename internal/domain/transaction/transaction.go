package transaction

import (
	"context"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Types string

const (
	Deposit    Types = "deposit"
	Investment Types = "investment"
	Yield      Types = "yield"
	Fee        Types = "fee"
	Withdrawal Types = "withdrawal"
)

func (t Types) IsValid() bool {
	switch t {
	case Deposit, Investment, Yield, Fee, Withdrawal:
		return true
	}
	return false
}

type Status string

const (
	StatusApplied   Status = "Aplicado"
	StatusPending   Status = "En proceso"
	StatusCancelled Status = "Cancelado"
)

// Transaction es un movimiento de la cuenta de inversión. Los registros
// históricos pueden traer tipos y estados libres; el clasificador del ledger
// los resuelve al calcular.
type Transaction struct {
	Id           ulid.ULID  `json:"id"`
	TenantId     ulid.ULID  `json:"tenantId"`
	UserId       ulid.ULID  `json:"userId"`
	InvestmentId *ulid.ULID `json:"investmentId,omitempty"`
	Type         Types      `json:"type"`
	Description  string     `json:"description"`
	Reference    string     `json:"reference"`
	Status       Status     `json:"status"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	HappenedAt   time.Time  `json:"happenedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ToLedger adapta el movimiento a la forma que consume el ledger; el producto
// del ledger es la cuenta de inversión.
func (t *Transaction) ToLedger() ledger.Transaction {
	productID := ""
	if t.InvestmentId != nil {
		productID = t.InvestmentId.String()
	}
	return ledger.Transaction{
		ID:          t.Id.String(),
		Type:        string(t.Type),
		Description: t.Description,
		Date:        t.HappenedAt,
		Reference:   t.Reference,
		Status:      string(t.Status),
		Amount:      t.Amount,
		ProductID:   productID,
	}
}

func ToLedger(txns []*Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, t.ToLedger())
	}
	return out
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	// UpdateStatus cambia el estado sólo si el movimiento sigue en from; devuelve false si no.
	UpdateStatus(ctx context.Context, tenantID, id ulid.ULID, from, to Status) (bool, error)
	GetByID(ctx context.Context, tenantID, id ulid.ULID) (*Transaction, error)
	ListByUser(ctx context.Context, tenantID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	AllByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]*Transaction, error)
	ListPendingWithdrawals(ctx context.Context, tenantID ulid.ULID, userID *ulid.ULID) ([]*Transaction, error)
	CountPendingWithdrawals(ctx context.Context, tenantID, userID ulid.ULID) (int64, error)
}
