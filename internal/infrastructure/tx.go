package infrastructure

import (
	"context"

	"github.com/Azell-Tech/azell-web/internal/domain/shared"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTransactor abre una transacción y la deja en el contexto para que los
// repositorios la usen a través de conn.
type GormTransactor struct {
	DB *gorm.DB
}

var _ shared.Transactor = (*GormTransactor)(nil)

func NewTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{DB: db}
}

func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn devuelve la transacción del contexto o, si no hay, la conexión base.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
