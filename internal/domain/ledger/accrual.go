package ledger

import (
	"math"
	"time"

	"github.com/Azell-Tech/azell-web/internal/pkg/money"

	"github.com/shopspring/decimal"
)

// YieldIncrement es el interés simple de un aporte: amount * bps/10000 * days/365.
// days <= 0 se toma como 1; montos o tasas negativas dan 0.
func YieldIncrement(amount float64, annualRateBps int, days int) float64 {
	if amount <= 0 || annualRateBps <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	if days <= 0 {
		days = 1
	}
	inc := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromInt(int64(annualRateBps))).
		Div(decimal.NewFromInt(10000)).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(365))
	f, _ := inc.Float64()
	return money.Round2(f)
}

// ElapsedDays cuenta días completos entre dos instantes, mínimo 1.
func ElapsedDays(from, to time.Time) int {
	if from.IsZero() || !to.After(from) {
		return 1
	}
	days := int(to.Sub(from).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
