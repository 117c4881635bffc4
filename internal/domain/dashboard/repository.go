package dashboard

import (
	"context"

	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"

	"github.com/oklog/ulid/v2"
)

// Snapshot es todo lo que necesita el tablero de un usuario, leído en un solo momento.
type Snapshot struct {
	Holdings     []investment.Holding
	Transactions []*transaction.Transaction
}

type Repository interface {
	// LoadSnapshot devuelve los movimientos ordenados por fecha e id descendentes.
	LoadSnapshot(ctx context.Context, tenantID, userID ulid.ULID) (*Snapshot, error)
}
