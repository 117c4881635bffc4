package infrastructure_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/tenant"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	"github.com/Azell-Tech/azell-web/internal/domain/user"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"
	"github.com/Azell-Tech/azell-web/internal/infrastructure"
	"github.com/Azell-Tech/azell-web/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := infrastructure.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infrastructure.RunMigrations(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	tenant   *tenant.Tenant
	user     *user.User
	product  *product.Product
	account  *investment.Investment
	movement *infrastructure.TransactionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	now := pkg.Now()

	tn := &tenant.Tenant{Id: pkg.NewID(), Code: "AZELL", Name: "Azell", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, (&infrastructure.TenantRepository{DB: db}).Create(ctx, tn))

	u := &user.User{Id: pkg.NewID(), TenantId: tn.Id, Name: "Ana", Email: "ana@azell.mx", Password: "hash", Role: shared.RoleUser, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, (&infrastructure.UserRepository{DB: db}).Create(ctx, u))

	p := &product.Product{Id: pkg.NewID(), TenantId: tn.Id, Code: "INV_12M", Name: "Inversión 12 meses", TermMonths: 12, AnnualRateBps: 1200, Currency: "MXN", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, (&infrastructure.ProductRepository{DB: db}).Create(ctx, p))

	inv := &investment.Investment{
		Id: pkg.NewID(), TenantId: tn.Id, UserId: u.Id, ProductId: p.Id, Status: investment.StatusActive,
		Principal: 10000, Currency: "MXN", OpenedAt: now, MaturityAt: now.AddDate(1, 0, 0), LastAccrualAt: now,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, (&infrastructure.InvestmentRepository{DB: db}).Create(ctx, inv))

	return &fixture{db: db, tenant: tn, user: u, product: p, account: inv, movement: &infrastructure.TransactionRepository{DB: db}}
}

func (f *fixture) addMovement(t *testing.T, kind transaction.Types, status transaction.Status, amount float64, at time.Time) *transaction.Transaction {
	t.Helper()
	invID := f.account.Id
	m := transaction.NewMovement(f.tenant.Id, f.user.Id, &invID, kind, amount, "Movimiento", "MOV", "MXN")
	m.Status = status
	m.HappenedAt = at
	require.NoError(t, f.movement.Create(context.Background(), m))
	return m
}

func TestUserRepository(t *testing.T) {
	f := newFixture(t)
	repo := &infrastructure.UserRepository{DB: f.db}
	ctx := context.Background()

	got, err := repo.GetByEmail(ctx, f.tenant.Id, "ana@azell.mx")
	require.NoError(t, err)
	assert.Equal(t, f.user.Id, got.Id)

	dup := *f.user
	dup.Id = pkg.NewID()
	err = repo.Create(ctx, &dup)
	require.Error(t, err)
	assert.True(t, shared.IsUniqueConstraintError(err))

	now := pkg.Now()
	pending := &user.User{Id: pkg.NewID(), TenantId: f.tenant.Id, Name: "Beto", Email: "beto@azell.mx", Password: "hash", Role: shared.RoleUser, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, pending))

	inactive := false
	items, total, err := repo.List(ctx, f.tenant.Id, user.Filter{Active: &inactive}, &pkg.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, pending.Id, items[0].Id)

	rejectedAt := pkg.Now()
	rejected := &user.User{Id: pkg.NewID(), TenantId: f.tenant.Id, Name: "Caro", Email: "caro@azell.mx", Password: "hash", Role: shared.RoleUser, RejectedAt: &rejectedAt, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, rejected))

	notRejected, isRejected := false, true
	items, _, err = repo.List(ctx, f.tenant.Id, user.Filter{Active: &inactive, Rejected: &notRejected}, &pkg.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, pending.Id, items[0].Id)

	items, _, err = repo.List(ctx, f.tenant.Id, user.Filter{Active: &inactive, Rejected: &isRejected}, &pkg.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rejected.Id, items[0].Id)
	assert.True(t, items[0].IsRejected())

	f.user.Active = false
	f.user.MustChangePassword = true
	require.NoError(t, repo.Update(ctx, f.user))
	got, err = repo.GetByID(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.True(t, got.MustChangePassword)

	_, err = repo.GetByID(ctx, ulid.Make(), f.user.Id)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUserNotFound))
}

func TestProductRepository(t *testing.T) {
	f := newFixture(t)
	repo := &infrastructure.ProductRepository{DB: f.db}
	ctx := context.Background()

	got, err := repo.GetByCode(ctx, f.tenant.Id, "INV_12M")
	require.NoError(t, err)
	assert.Equal(t, f.product.Id, got.Id)
	assert.Nil(t, got.MinContribution)

	newer := *f.product
	newer.Id = pkg.NewID()
	newer.Code = "INV_6M"
	newer.CreatedAt = f.product.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Create(ctx, &newer))

	latest, err := repo.LatestActive(ctx, f.tenant.Id)
	require.NoError(t, err)
	assert.Equal(t, newer.Id, latest.Id)

	newer.Active = false
	minimum := 500.0
	newer.MinContribution = &minimum
	require.NoError(t, repo.Update(ctx, &newer))

	active, err := repo.List(ctx, f.tenant.Id, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, f.product.Id, active[0].Id)

	all, err := repo.List(ctx, f.tenant.Id, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := repo.GetByID(ctx, f.tenant.Id, newer.Id)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.MinContribution)
	assert.InDelta(t, 500, *updated.MinContribution, 1e-9)

	_, err = repo.GetByID(ctx, ulid.Make(), newer.Id)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrProductNotFound))
}

func TestInvestmentRepository(t *testing.T) {
	f := newFixture(t)
	repo := &infrastructure.InvestmentRepository{DB: f.db}
	ctx := context.Background()

	accruedAt := pkg.Now().Add(time.Hour)
	require.NoError(t, repo.ApplyContribution(ctx, f.account.Id, 2500, 0.82, accruedAt))

	locked, err := repo.LockForUpdate(ctx, f.tenant.Id, f.account.Id)
	require.NoError(t, err)
	assert.InDelta(t, 12500, locked.Principal, 1e-6)
	assert.InDelta(t, 0.82, locked.AccruedYield, 1e-6)
	assert.WithinDuration(t, accruedAt, locked.LastAccrualAt, time.Second)

	active, err := repo.GetActiveByUserAndProduct(ctx, f.tenant.Id, f.user.Id, f.product.Id)
	require.NoError(t, err)
	assert.Equal(t, f.account.Id, active.Id)

	ids, err := repo.ProductIDsByUser(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)
	assert.Equal(t, []ulid.ULID{f.product.Id}, ids)

	err = repo.ApplyContribution(ctx, ulid.Make(), 1, 0, accruedAt)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvestmentNotFound))

	_, err = repo.GetActiveByUserAndProduct(ctx, f.tenant.Id, ulid.Make(), f.product.Id)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvestmentNotFound))
}

func TestTransactionRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	deposit := f.addMovement(t, transaction.Investment, transaction.StatusApplied, 10000, base)
	pending := f.addMovement(t, transaction.Withdrawal, transaction.StatusPending, -1500, base.Add(24*time.Hour))
	f.addMovement(t, transaction.Withdrawal, transaction.StatusCancelled, -300, base.Add(48*time.Hour))
	f.addMovement(t, transaction.Yield, transaction.StatusApplied, 3.29, base.Add(72*time.Hour))

	all, err := f.movement.AllByUser(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, transaction.Yield, all[0].Type)
	assert.Equal(t, deposit.Id, all[3].Id)
	require.NotNil(t, all[3].InvestmentId)
	assert.Equal(t, f.account.Id, *all[3].InvestmentId)

	page, total, err := f.movement.ListByUser(ctx, f.tenant.Id, f.user.Id, &pkg.PaginationParams{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, page, 1)
	assert.Equal(t, deposit.Id, page[0].Id)

	pendings, err := f.movement.ListPendingWithdrawals(ctx, f.tenant.Id, &f.user.Id)
	require.NoError(t, err)
	require.Len(t, pendings, 1)
	assert.Equal(t, pending.Id, pendings[0].Id)

	tenantWide, err := f.movement.ListPendingWithdrawals(ctx, f.tenant.Id, nil)
	require.NoError(t, err)
	assert.Len(t, tenantWide, 1)

	counter := &infrastructure.ResourceCounter{DB: f.db}
	count, err := counter.CountPendingWithdrawals(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	changed, err := f.movement.UpdateStatus(ctx, f.tenant.Id, pending.Id, transaction.StatusPending, transaction.StatusApplied)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.movement.UpdateStatus(ctx, f.tenant.Id, pending.Id, transaction.StatusPending, transaction.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := f.movement.GetByID(ctx, f.tenant.Id, pending.Id)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusApplied, got.Status)
	assert.InDelta(t, -1500, got.Amount, 1e-9)

	count, err = counter.CountPendingWithdrawals(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.movement.GetByID(ctx, f.tenant.Id, ulid.Make())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrTransactionNotFound))
}

func TestDashboardRepositoryLoadSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.addMovement(t, transaction.Investment, transaction.StatusApplied, 10000, base)
	f.addMovement(t, transaction.Yield, transaction.StatusApplied, 3.29, base.Add(time.Hour))

	repo := &infrastructure.DashboardRepository{DB: f.db}
	snapshot, err := repo.LoadSnapshot(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)

	require.Len(t, snapshot.Holdings, 1)
	assert.Equal(t, f.account.Id, snapshot.Holdings[0].Investment.Id)
	require.NotNil(t, snapshot.Holdings[0].Product)
	assert.Equal(t, "INV_12M", snapshot.Holdings[0].Product.Code)
	require.Len(t, snapshot.Transactions, 2)
	assert.Equal(t, transaction.Yield, snapshot.Transactions[0].Type)

	empty, err := repo.LoadSnapshot(ctx, f.tenant.Id, ulid.Make())
	require.NoError(t, err)
	assert.Empty(t, empty.Holdings)
	assert.Empty(t, empty.Transactions)
}

func TestTransactorRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx := infrastructure.NewTransactor(f.db)
	boom := errors.New("boom")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		f.addMovementCtx(t, ctx)
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	all, err := f.movement.AllByUser(ctx, f.tenant.Id, f.user.Id)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func (f *fixture) addMovementCtx(t *testing.T, ctx context.Context) {
	t.Helper()
	invID := f.account.Id
	m := transaction.NewMovement(f.tenant.Id, f.user.Id, &invID, transaction.Deposit, 100, "Depósito", "DEP", "MXN")
	require.NoError(t, f.movement.Create(ctx, m))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := infrastructure.Open("mysql", "")
	assert.Error(t, err)
}
