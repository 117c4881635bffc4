package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := day(s)
	return &t
}

func TestYieldIncrement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		bps    int
		days   int
		want   float64
	}{
		{name: "one day at 12%", amount: 10000, bps: 1200, days: 1, want: 3.29},
		{name: "zero days defaults to one", amount: 10000, bps: 1200, days: 0, want: 3.29},
		{name: "negative days defaults to one", amount: 10000, bps: 1200, days: -5, want: 3.29},
		{name: "full year", amount: 10000, bps: 1200, days: 365, want: 1200},
		{name: "negative amount", amount: -100, bps: 1200, days: 1, want: 0},
		{name: "zero rate", amount: 5000, bps: 0, days: 30, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ledger.YieldIncrement(tt.amount, tt.bps, tt.days))
		})
	}
}

func TestElapsedDays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, ledger.ElapsedDays(time.Time{}, day("2025-03-01")))
	assert.Equal(t, 1, ledger.ElapsedDays(day("2025-03-01"), day("2025-03-01")))
	assert.Equal(t, 1, ledger.ElapsedDays(day("2025-03-02"), day("2025-03-01")))
	assert.Equal(t, 30, ledger.ElapsedDays(day("2025-03-01"), day("2025-03-31")))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tx   ledger.Transaction
		want ledger.Kind
	}{
		{
			name: "blank type with retiro description and WDR reference",
			tx:   ledger.Transaction{Description: "Solicitud de retiro", Reference: "WDR-1001"},
			want: ledger.KindWithdrawal,
		},
		{name: "capitalized yield", tx: ledger.Transaction{Type: "Yield"}, want: ledger.KindYield},
		{
			name: "blank type deposit description",
			tx:   ledger.Transaction{Description: "Deposito inicial"},
			want: ledger.KindUnknown,
		},
		{name: "accented retiro tag", tx: ledger.Transaction{Type: "Retíro"}, want: ledger.KindWithdrawal},
		{name: "withdraw tag", tx: ledger.Transaction{Type: " WITHDRAW "}, want: ledger.KindWithdrawal},
		{name: "deposit", tx: ledger.Transaction{Type: "deposit"}, want: ledger.KindDeposit},
		{name: "investment", tx: ledger.Transaction{Type: "Investment"}, want: ledger.KindInvestment},
		{name: "fee", tx: ledger.Transaction{Type: "fee"}, want: ledger.KindFee},
		{name: "reference only", tx: ledger.Transaction{Reference: "  wdr-77 "}, want: ledger.KindWithdrawal},
		{name: "description with accents", tx: ledger.Transaction{Description: "RETIRO parcial"}, want: ledger.KindWithdrawal},
		{
			name: "unknown non empty tag skips fallback",
			tx:   ledger.Transaction{Type: "transfer", Description: "retiro", Reference: "WDR-1"},
			want: ledger.KindUnknown,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ledger.Classify(tt.tx))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	applied := []string{"Aplicado", "aplicada", "APPLIED", "completed"}
	pending := []string{"En proceso", "En progreso", "proceso", "Pendiente", "pending", "processing", "in process", "In-Progress"}
	other := []string{"", "Cancelado", "rejected", "??"}

	for _, s := range applied {
		assert.Equal(t, ledger.StatusApplied, ledger.NormalizeStatus(s), s)
	}
	for _, s := range pending {
		assert.Equal(t, ledger.StatusPending, ledger.NormalizeStatus(s), s)
	}
	for _, s := range other {
		assert.Equal(t, ledger.StatusOther, ledger.NormalizeStatus(s), s)
	}

	assert.True(t, ledger.IsCancelled("Cancelado"))
	assert.True(t, ledger.IsCancelled("canceled"))
	assert.False(t, ledger.IsCancelled("Aplicado"))
}

func withdrawal(id, product, ref, status, date string, amount float64) ledger.Transaction {
	return ledger.Transaction{
		ID:        id,
		Type:      "withdrawal",
		Date:      day(date),
		Reference: ref,
		Status:    status,
		Amount:    amount,
		ProductID: product,
	}
}

func TestAggregateWithdrawalsDedup(t *testing.T) {
	t.Parallel()

	txns := []ledger.Transaction{
		withdrawal("01", "p1", "WDR-1", "Aplicado", "2025-02-01", -2000),
		withdrawal("02", "p1", "WDR-1", "aplicado", "2025-02-01", 2000),
		withdrawal("03", "p1", "WDR-2", "En proceso", "2025-03-01", 1000),
		withdrawal("04", "p1", "WDR-2", "En proceso", "2025-03-01", 1000),
		withdrawal("05", "p1", "WDR-3", "Cancelado", "2025-03-05", 500),
		{ID: "06", Type: "yield", Status: "Aplicado", Amount: 50, ProductID: "p1", Date: day("2025-03-01")},
	}

	out := ledger.AggregateWithdrawals(txns)
	require.Contains(t, out, "p1")
	assert.Equal(t, 2000.0, out["p1"].AppliedSum)
	assert.Equal(t, 1000.0, out["p1"].PendingSum)
	require.Len(t, out["p1"].Pending, 1)
	assert.Equal(t, "03", out["p1"].Pending[0].ID, "first seen wins")
}

func TestAggregateWithdrawalsOrderIndependent(t *testing.T) {
	t.Parallel()

	base := []ledger.Transaction{
		withdrawal("01", "p1", "WDR-1", "Aplicado", "2025-01-10", 1500),
		withdrawal("02", "p1", "WDR-2", "Pendiente", "2025-01-12", 250.5),
		withdrawal("03", "p2", "WDR-3", "Pendiente", "2025-01-13", 300),
		withdrawal("04", "", "WDR-4", "applied", "2025-01-14", 10),
	}
	doubled := append(append([]ledger.Transaction{}, base...), base...)

	want := ledger.AggregateWithdrawals(base)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]ledger.Transaction{}, doubled...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ledger.AggregateWithdrawals(shuffled)
		require.Len(t, got, len(want))
		for pid, entry := range want {
			assert.Equal(t, entry.AppliedSum, got[pid].AppliedSum, pid)
			assert.Equal(t, entry.PendingSum, got[pid].PendingSum, pid)
		}
	}

	assert.Equal(t, 10.0, want[ledger.UnknownProduct].AppliedSum)
}

func TestAggregateWithdrawalsPendingSortedDesc(t *testing.T) {
	t.Parallel()

	out := ledger.AggregateWithdrawals([]ledger.Transaction{
		withdrawal("01", "p1", "WDR-1", "pending", "2025-01-01", 1),
		withdrawal("03", "p1", "WDR-3", "pending", "2025-03-01", 3),
		withdrawal("02", "p1", "WDR-2", "pending", "2025-03-01", 2),
	})

	pending := out["p1"].Pending
	require.Len(t, pending, 3)
	assert.Equal(t, []string{"03", "02", "01"}, []string{pending[0].ID, pending[1].ID, pending[2].ID})
}

func activeProduct(id string, invested float64) ledger.Product {
	return ledger.Product{ID: id, Status: "Activo", Invested: invested}
}

func TestValidateWithdrawal(t *testing.T) {
	t.Parallel()

	product := activeProduct("p1", 10000)
	entry := ledger.AggregateWithdrawals([]ledger.Transaction{
		withdrawal("01", "p1", "WDR-1", "Aplicado", "2025-02-01", 2000),
		withdrawal("02", "p1", "WDR-2", "En proceso", "2025-03-01", 1000),
	})["p1"]

	accepted := ledger.ValidateWithdrawal(product, entry, 7000)
	assert.True(t, accepted.Accepted)
	assert.Equal(t, 7000.0, accepted.Available)

	rejected := ledger.ValidateWithdrawal(product, entry, 7001)
	assert.False(t, rejected.Accepted)
	assert.Equal(t, ledger.ReasonExceedsAvailable, rejected.Code)
	assert.Contains(t, rejected.Reason, "7,000")

	invalid := ledger.ValidateWithdrawal(product, entry, 0)
	assert.Equal(t, ledger.ReasonInvalidAmount, invalid.Code)

	drained := ledger.ValidateWithdrawal(activeProduct("p2", 1000), &ledger.WithdrawalLedger{AppliedSum: 1000}, 10)
	assert.Equal(t, ledger.ReasonNoAvailableBalance, drained.Code)

	closed := ledger.ValidateWithdrawal(ledger.Product{ID: "p3", Status: "Cerrado", Invested: 5000}, nil, 10)
	assert.Equal(t, ledger.ReasonNoAvailableBalance, closed.Code)

	fresh := ledger.ValidateWithdrawal(activeProduct("p4", 500), nil, 500)
	assert.True(t, fresh.Accepted)
}

func TestValidateWithdrawalSubCentAmount(t *testing.T) {
	t.Parallel()

	product := activeProduct("p1", 10000)
	for _, amount := range []float64{0.004, -0.004, ledger.SanitizeAmount("0.004")} {
		v := ledger.ValidateWithdrawal(product, nil, amount)
		assert.False(t, v.Accepted, amount)
		assert.Equal(t, ledger.ReasonInvalidAmount, v.Code, amount)
		assert.Equal(t, 10000.0, v.Available)
	}

	cent := ledger.ValidateWithdrawal(product, nil, 0.005)
	assert.True(t, cent.Accepted)

	edge := ledger.ValidateWithdrawal(activeProduct("p2", 100), nil, 100.004)
	assert.True(t, edge.Accepted)
}

func TestSanitizeAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7000.5, ledger.SanitizeAmount("$7,000.50"))
	assert.Equal(t, 1.23, ledger.SanitizeAmount("1.2.3"))
	assert.Equal(t, 100.0, ledger.SanitizeAmount("-100"))
	assert.Equal(t, 0.0, ledger.SanitizeAmount("abc"))
	assert.Equal(t, 0.0, ledger.SanitizeAmount(""))
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	assert.True(t, ledger.CanTransition("En proceso", "Aplicado"))
	assert.True(t, ledger.CanTransition("En proceso", "Cancelado"))
	assert.False(t, ledger.CanTransition("Aplicado", "Cancelado"))
	assert.False(t, ledger.CanTransition("Cancelado", "En proceso"))
	assert.False(t, ledger.CanTransition("En proceso", "En proceso"))
}

func TestProgressPct(t *testing.T) {
	t.Parallel()

	now := day("2025-07-02")
	pct := ledger.ProgressPct(datePtr("2025-01-01"), datePtr("2026-01-01"), now)
	assert.InDelta(t, 50, pct, 1)

	assert.Equal(t, 0.0, ledger.ProgressPct(nil, datePtr("2026-01-01"), now))
	assert.Equal(t, 0.0, ledger.ProgressPct(datePtr("2026-01-01"), datePtr("2025-01-01"), now))
	assert.Equal(t, 100.0, ledger.ProgressPct(datePtr("2020-01-01"), datePtr("2021-01-01"), now))
	assert.Equal(t, 0.0, ledger.ProgressPct(datePtr("2030-01-01"), datePtr("2031-01-01"), now))
}

func TestYTDRatio(t *testing.T) {
	t.Parallel()

	now := day("2025-06-30")
	txns := []ledger.Transaction{
		{ID: "1", Type: "yield", Status: "Aplicado", Amount: 600, Date: day("2025-02-01")},
		{ID: "2", Type: "yield", Status: "Aplicado", Amount: 400, Date: day("2025-05-01")},
		{ID: "3", Type: "yield", Status: "Aplicado", Amount: 900, Date: day("2024-12-31")},
	}
	assert.InDelta(t, 0.10, ledger.YTDRatio(txns, 12000, 2000, now), 1e-9)

	big := []ledger.Transaction{{ID: "1", Type: "yield", Amount: 50000, Date: day("2025-01-02")}}
	assert.Equal(t, ledger.MaxYTDRatio, ledger.YTDRatio(big, 10000, 0, now))

	assert.Equal(t, 0.0, ledger.YTDRatio(txns, 1000, 1000, now))
}

func TestYTDRatioUsesClockTimeZone(t *testing.T) {
	t.Parallel()

	mexico := time.FixedZone("CST", -6*60*60)
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, mexico)

	// 2025-01-01 03:00 UTC todavía es 31 de diciembre en CST
	lastYear := ledger.Transaction{ID: "1", Type: "yield", Status: "Aplicado", Amount: 500, Date: time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)}
	thisYear := ledger.Transaction{ID: "2", Type: "yield", Status: "Aplicado", Amount: 100, Date: time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)}

	assert.InDelta(t, 0.01, ledger.YTDRatio([]ledger.Transaction{lastYear, thisYear}, 10000, 0, now), 1e-9)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := day("2025-07-02")
	products := []ledger.Product{
		{
			ID:           "p1",
			Status:       "Activo",
			Invested:     10000,
			StartDate:    datePtr("2025-01-01"),
			MaturityDate: datePtr("2026-01-01"),
		},
		{ID: "p2", Status: "Disponible", Invested: 99999},
	}
	txns := []ledger.Transaction{
		withdrawal("01", "p1", "WDR-1", "Aplicado", "2025-02-01", 2000),
		withdrawal("02", "p1", "WDR-2", "En proceso", "2025-03-01", 1000),
		{ID: "03", Type: "yield", Status: "Aplicado", Amount: 800, ProductID: "p1", Date: day("2025-04-01")},
		{ID: "04", Type: "yield", Status: "Cancelado", Amount: 300, ProductID: "p1", Date: day("2025-04-02")},
	}

	s := ledger.Summarize(products, txns, now)

	assert.Equal(t, 10000.0, s.InvestedGross)
	assert.Equal(t, 2000.0, s.AppliedWithdrawalsTotal)
	assert.Equal(t, 800.0, s.YieldAppliedTotal)
	assert.Equal(t, 8800.0, s.NetWorth)
	assert.InDelta(t, 0.1, s.YTDRatio, 1e-9)

	require.Len(t, s.PerProduct, 1)
	p := s.PerProduct[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 8000.0, p.Saldo)
	assert.Equal(t, 1000.0, p.PendingSum)
	assert.Equal(t, 2000.0, p.AppliedSum)
	assert.Equal(t, 7000.0, p.Available)
	assert.InDelta(t, 50, p.ProgressPct, 1)
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := ledger.Summarize(nil, nil, time.Now())
	assert.Equal(t, 0.0, s.NetWorth)
	assert.Equal(t, 0.0, s.YTDRatio)
	assert.NotNil(t, s.PerProduct)
	assert.Empty(t, s.PerProduct)
}
