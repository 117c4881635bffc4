package ledger

import (
	"math"
	"time"

	"github.com/Azell-Tech/azell-web/internal/pkg/money"
)

// MaxYTDRatio evita mostrar un rendimiento anual de 100% o más.
const MaxYTDRatio = 0.999

type ProductSummary struct {
	ID          string  `json:"id"`
	Saldo       float64 `json:"saldo"`
	PendingSum  float64 `json:"pendingSum"`
	AppliedSum  float64 `json:"appliedSum"`
	Available   float64 `json:"available"`
	ProgressPct float64 `json:"progressPct"`
}

type Summary struct {
	NetWorth                float64          `json:"netWorth"`
	InvestedGross           float64          `json:"investedGross"`
	AppliedWithdrawalsTotal float64          `json:"appliedWithdrawalsTotal"`
	YieldAppliedTotal       float64          `json:"yieldAppliedTotal"`
	YTDRatio                float64          `json:"ytdRatio"`
	PerProduct              []ProductSummary `json:"perProduct"`
}

// Summarize arma la vista de portafolio sólo con productos activos.
func Summarize(products []Product, txns []Transaction, now time.Time) Summary {
	ledgers := AggregateWithdrawals(txns)

	summary := Summary{PerProduct: make([]ProductSummary, 0, len(products))}
	for _, p := range products {
		if !p.IsActive() {
			continue
		}
		invested := finiteOrZero(p.Invested)
		entry := ledgers[p.ID]

		applied := entry.appliedOrZero()
		pending := entry.pendingOrZero()
		saldo := math.Max(0, invested-applied)

		summary.InvestedGross += invested
		summary.AppliedWithdrawalsTotal += applied
		summary.PerProduct = append(summary.PerProduct, ProductSummary{
			ID:          p.ID,
			Saldo:       money.Round2(saldo),
			PendingSum:  pending,
			AppliedSum:  applied,
			Available:   money.Round2(math.Max(0, saldo-pending)),
			ProgressPct: ProgressPct(p.StartDate, p.MaturityDate, now),
		})
	}

	summary.YieldAppliedTotal = money.Round2(YieldTotal(txns))
	summary.InvestedGross = money.Round2(summary.InvestedGross)
	summary.AppliedWithdrawalsTotal = money.Round2(summary.AppliedWithdrawalsTotal)
	summary.NetWorth = money.Round2(
		math.Max(0, summary.InvestedGross-summary.AppliedWithdrawalsTotal) + math.Max(0, summary.YieldAppliedTotal),
	)
	summary.YTDRatio = YTDRatio(txns, summary.InvestedGross, summary.AppliedWithdrawalsTotal, now)
	return summary
}

// YieldTotal suma los rendimientos; los cancelados no cuentan.
func YieldTotal(txns []Transaction) float64 {
	var total float64
	for _, t := range txns {
		if Classify(t) != KindYield || IsCancelled(t.Status) {
			continue
		}
		total += finiteOrZero(t.Amount)
	}
	return total
}

// YTDRatio divide el rendimiento del año en curso entre el capital neto, acotado a [0, 0.999].
func YTDRatio(txns []Transaction, investedGross, appliedWithdrawals float64, now time.Time) float64 {
	base := math.Max(0, investedGross-appliedWithdrawals)
	if base == 0 {
		return 0
	}

	year := now.Year()
	var ytd float64
	for _, t := range txns {
		if t.Date.IsZero() || t.Date.In(now.Location()).Year() != year {
			continue
		}
		if Classify(t) != KindYield || IsCancelled(t.Status) {
			continue
		}
		ytd += finiteOrZero(t.Amount)
	}
	return clamp(ytd/base, 0, MaxYTDRatio)
}

// ProgressPct es el avance del plazo en porcentaje; 0 sin fechas válidas.
func ProgressPct(start, maturity *time.Time, now time.Time) float64 {
	if start == nil || maturity == nil || start.IsZero() || maturity.IsZero() {
		return 0
	}
	s, m := truncateDay(*start), truncateDay(*maturity)
	if !m.After(s) {
		return 0
	}
	pct := float64(now.Sub(s)) / float64(m.Sub(s)) * 100
	return money.Round2(clamp(pct, 0, 100))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
