package infrastructure

import (
	"context"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// ResourceCounter cuenta lo que el limitador de recursos necesita conocer antes
// de aceptar una nueva solicitud.
type ResourceCounter struct {
	DB *gorm.DB
}

func (r *ResourceCounter) CountPendingWithdrawals(ctx context.Context, tenantID, userID ulid.ULID) (int64, error) {
	movements := &TransactionRepository{DB: r.DB}
	return movements.CountPendingWithdrawals(ctx, tenantID, userID)
}
