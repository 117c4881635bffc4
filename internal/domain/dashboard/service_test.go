package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/dashboard"
	"github.com/Azell-Tech/azell-web/internal/domain/investment"
	"github.com/Azell-Tech/azell-web/internal/domain/product"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	appErrors "github.com/Azell-Tech/azell-web/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	loadFn func(ctx context.Context, tenantID, userID ulid.ULID) (*dashboard.Snapshot, error)
}

func (f *fakeRepository) LoadSnapshot(ctx context.Context, tenantID, userID ulid.ULID) (*dashboard.Snapshot, error) {
	if f.loadFn != nil {
		return f.loadFn(ctx, tenantID, userID)
	}
	return &dashboard.Snapshot{}, nil
}

type approvedUsers bool

func (a approvedUsers) IsApproved(ctx context.Context, tenantID, userID ulid.ULID) (bool, error) {
	return bool(a), nil
}

func movement(invID ulid.ULID, kind transaction.Types, status transaction.Status, amount float64, at time.Time) *transaction.Transaction {
	id := invID
	return &transaction.Transaction{
		Id:           ulid.Make(),
		InvestmentId: &id,
		Type:         kind,
		Status:       status,
		Amount:       amount,
		Reference:    fmt.Sprintf("%s-%d", kind, at.UnixNano()),
		HappenedAt:   at,
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	opened := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &product.Product{Id: ulid.Make(), Name: "Inversión 12 meses", TermMonths: 12, AnnualRateBps: 1200, Active: true}
	inv := &investment.Investment{
		Id: ulid.Make(), ProductId: p.Id, Status: investment.StatusActive, Principal: 10000,
		OpenedAt: opened, MaturityAt: opened.AddDate(1, 0, 0), Currency: "MXN",
	}

	snapshot := &dashboard.Snapshot{
		Holdings: []investment.Holding{{Investment: inv, Product: p}},
		Transactions: []*transaction.Transaction{
			movement(inv.Id, transaction.Withdrawal, transaction.StatusPending, -1000, now.AddDate(0, 0, -1)),
			movement(inv.Id, transaction.Withdrawal, transaction.StatusApplied, -2000, now.AddDate(0, 0, -5)),
			movement(inv.Id, transaction.Yield, transaction.StatusApplied, 500, now.AddDate(0, -1, 0)),
			movement(inv.Id, transaction.Investment, transaction.StatusApplied, 10000, opened),
		},
	}

	resp := dashboard.Build("Ana", "MXN", snapshot, now)

	assert.Equal(t, 10000.0, resp.Portfolio.InvestedGross)
	assert.Equal(t, 2000.0, resp.Portfolio.AppliedWithdrawalsTotal)
	assert.Equal(t, 500.0, resp.Portfolio.YieldAppliedTotal)
	assert.Equal(t, 8500.0, resp.Portfolio.NetWorth)
	assert.Equal(t, "$8,500", resp.Summary.NetWorth)
	assert.Equal(t, "Ana", resp.Summary.Name)

	require.Len(t, resp.Products, 1)
	card := resp.Products[0]
	assert.Equal(t, 8000.0, card.Saldo)
	assert.Equal(t, 1000.0, card.Pending)
	assert.Equal(t, 7000.0, card.Available)
	assert.Greater(t, card.ProgressPct, 0.0)
	assert.Less(t, card.ProgressPct, 100.0)

	require.Len(t, resp.Transactions, 4)
	assert.True(t, resp.Transactions[0].Date.After(resp.Transactions[1].Date))
}

func TestBuildLimitsRecentTransactions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	invID := ulid.Make()
	snapshot := &dashboard.Snapshot{}
	for i := 0; i < 30; i++ {
		snapshot.Transactions = append(snapshot.Transactions,
			movement(invID, transaction.Yield, transaction.StatusApplied, 1, now.AddDate(0, 0, -i)))
	}

	resp := dashboard.Build("Ana", "", snapshot, now)
	assert.Len(t, resp.Transactions, 20)
	assert.Equal(t, "MXN", resp.Summary.Currency)
	assert.Empty(t, resp.Products)
	assert.Equal(t, 30.0, resp.Portfolio.YieldAppliedTotal)
}

func TestGetDashboardRequiresApproval(t *testing.T) {
	t.Parallel()

	session := shared.Session{UserID: ulid.Make(), TenantID: ulid.Make(), Role: shared.RoleUser}

	svc := dashboard.NewService(&fakeRepository{}, shared.NewApprovalChecker(approvedUsers(false)), "MXN")
	_, err := svc.GetDashboard(context.Background(), session)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUserNotApproved))

	var gotUser ulid.ULID
	svc = dashboard.NewService(&fakeRepository{
		loadFn: func(ctx context.Context, tenantID, userID ulid.ULID) (*dashboard.Snapshot, error) {
			gotUser = userID
			return &dashboard.Snapshot{}, nil
		},
	}, shared.NewApprovalChecker(approvedUsers(true)), "MXN")
	resp, err := svc.GetDashboard(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, gotUser)
	assert.Equal(t, 0.0, resp.Portfolio.NetWorth)
}
