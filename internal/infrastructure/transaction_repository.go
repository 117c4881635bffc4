package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/pkg"
	"github.com/Azell-Tech/azell-web/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// movementOrder deja la deduplicación del ledger estable: gana el más reciente.
const movementOrder = "happened_at DESC, id DESC"

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type movementDB struct {
	Id           string    `gorm:"type:varchar(26);primaryKey;column:id"`
	TenantId     string    `gorm:"type:varchar(26);index:idx_movements_tenant_user,priority:1;not null;column:tenant_id"`
	UserId       string    `gorm:"type:varchar(26);index:idx_movements_tenant_user,priority:2;not null;column:user_id"`
	InvestmentId *string   `gorm:"type:varchar(26);index;column:investment_id"`
	Type         string    `gorm:"type:varchar(30);not null;column:type"`
	Description  string    `gorm:"size:255;column:description"`
	Reference    string    `gorm:"type:varchar(40);index;column:reference"`
	Status       string    `gorm:"type:varchar(30);not null;index;column:status"`
	Amount       float64   `gorm:"type:decimal(15,2);not null;column:amount"`
	Currency     string    `gorm:"type:varchar(3);not null;column:currency"`
	HappenedAt   time.Time `gorm:"not null;index;column:happened_at"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at"`
}

func (movementDB) TableName() string {
	return "movements"
}

func toDomainTransaction(mdb *movementDB) (*transaction.Transaction, error) {
	ids, err := parseULIDs(mdb.Id, mdb.TenantId, mdb.UserId)
	if err != nil {
		return nil, err
	}
	var invID *ulid.ULID
	if mdb.InvestmentId != nil && *mdb.InvestmentId != "" {
		parsed, err := pkg.ParseULID(*mdb.InvestmentId)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
		invID = &parsed
	}

	return &transaction.Transaction{
		Id:           ids[0],
		TenantId:     ids[1],
		UserId:       ids[2],
		InvestmentId: invID,
		Type:         transaction.Types(mdb.Type),
		Description:  mdb.Description,
		Reference:    mdb.Reference,
		Status:       transaction.Status(mdb.Status),
		Amount:       mdb.Amount,
		Currency:     mdb.Currency,
		HappenedAt:   mdb.HappenedAt,
		CreatedAt:    mdb.CreatedAt,
		UpdatedAt:    mdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *movementDB {
	var invID *string
	if t.InvestmentId != nil {
		s := t.InvestmentId.String()
		invID = &s
	}
	return &movementDB{
		Id:           t.Id.String(),
		TenantId:     t.TenantId.String(),
		UserId:       t.UserId.String(),
		InvestmentId: invID,
		Type:         string(t.Type),
		Description:  t.Description,
		Reference:    t.Reference,
		Status:       string(t.Status),
		Amount:       t.Amount,
		Currency:     t.Currency,
		HappenedAt:   t.HappenedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	if err := conn(ctx, r.DB).Create(toDBTransaction(t)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// UpdateStatus sólo cambia filas que siguen en from, así dos cambios simultáneos no se pisan.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tenantID, id ulid.ULID, from, to transaction.Status) (bool, error) {
	result := conn(ctx, r.DB).Model(&movementDB{}).
		Where("tenant_id = ? AND id = ? AND status = ?", tenantID.String(), id.String(), string(from)).
		UpdateColumns(map[string]interface{}{
			"status":     string(to),
			"updated_at": pkg.Now(),
		})
	if result.Error != nil {
		return false, appErrors.NewDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, tenantID, id ulid.ULID) (*transaction.Transaction, error) {
	var row movementDB
	err := conn(ctx, r.DB).
		Where("tenant_id = ? AND id = ?", tenantID.String(), id.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainTransaction(&row)
}

func (r *TransactionRepository) ListByUser(ctx context.Context, tenantID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	q := r.userQuery(ctx, tenantID, userID)
	items, total, err := query.Execute(q, pagination, toDomainTransaction)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return items, total, nil
}

func (r *TransactionRepository) AllByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]*transaction.Transaction, error) {
	items, err := query.ExecuteAll(r.userQuery(ctx, tenantID, userID), toDomainTransaction)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return items, nil
}

// ListPendingWithdrawals filtra en SQL lo que seguro no está pendiente y deja
// la clasificación final al ledger, que también reconoce registros históricos.
func (r *TransactionRepository) ListPendingWithdrawals(ctx context.Context, tenantID ulid.ULID, userID *ulid.ULID) ([]*transaction.Transaction, error) {
	q := query.New[movementDB](conn(ctx, r.DB), "movements").
		Context(ctx).
		Tenant(tenantID.String()).
		WhereIf(userID != nil, "user_id = ?", userIDString(userID)).
		Where("status NOT IN ?", []string{string(transaction.StatusApplied), string(transaction.StatusCancelled)}).
		Order(movementOrder)

	items, err := query.ExecuteAll(q, toDomainTransaction)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*transaction.Transaction, 0, len(items))
	for _, t := range items {
		if t.IsPendingWithdrawal() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TransactionRepository) CountPendingWithdrawals(ctx context.Context, tenantID, userID ulid.ULID) (int64, error) {
	items, err := r.ListPendingWithdrawals(ctx, tenantID, &userID)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *TransactionRepository) userQuery(ctx context.Context, tenantID, userID ulid.ULID) *query.Query[movementDB] {
	return query.New[movementDB](conn(ctx, r.DB), "movements").
		Context(ctx).
		Tenant(tenantID.String()).
		Where("user_id = ?", userID.String()).
		Order(movementOrder)
}

func userIDString(id *ulid.ULID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
