package transaction

import (
	"strings"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// NewMovement arma un movimiento aplicado con id y fecha actuales.
func NewMovement(tenantID, userID ulid.ULID, investmentID *ulid.ULID, kind Types, amount float64, description, prefix, currency string) *Transaction {
	id := pkg.NewID()
	now := pkg.Now()
	return &Transaction{
		Id:           id,
		TenantId:     tenantID,
		UserId:       userID,
		InvestmentId: investmentID,
		Type:         kind,
		Description:  strings.TrimSpace(description),
		Reference:    pkg.Reference(prefix, id),
		Status:       StatusApplied,
		Amount:       amount,
		Currency:     currency,
		HappenedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsPendingWithdrawal usa el clasificador del ledger, así que también reconoce registros históricos.
func (t *Transaction) IsPendingWithdrawal() bool {
	lt := t.ToLedger()
	return ledger.IsWithdrawal(lt) && ledger.NormalizeStatus(lt.Status) == ledger.StatusPending
}

func (t *Transaction) BelongsTo(userID ulid.ULID) bool {
	return t.UserId == userID
}
