package investment

import (
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
)

// AccrualPolicy decide cuántos días de rendimiento genera un aporte.
type AccrualPolicy struct {
	// Elapsed devenga sobre el principal previo los días transcurridos desde el último devengo.
	Elapsed bool
	Days    int
}

func FixedAccrual(days int) AccrualPolicy {
	if days < 1 {
		days = 1
	}
	return AccrualPolicy{Days: days}
}

// Increment calcula el rendimiento que genera amount al momento now.
func (p AccrualPolicy) Increment(inv *Investment, amount float64, annualRateBps int, now time.Time) float64 {
	if p.Elapsed {
		return ledger.YieldIncrement(inv.Principal, annualRateBps, ledger.ElapsedDays(inv.LastAccrualAt, now))
	}
	return ledger.YieldIncrement(amount, annualRateBps, p.Days)
}
