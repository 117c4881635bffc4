// Package ledger calcula saldos, retiros y rendimientos a partir de una
// instantánea de productos y movimientos. Todas las funciones son puras:
// no hacen I/O ni guardan estado entre llamadas.
package ledger

import (
	"strings"
	"time"
)

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindInvestment Kind = "investment"
	KindYield      Kind = "yield"
	KindFee        Kind = "fee"
	KindWithdrawal Kind = "withdrawal"
	KindUnknown    Kind = "unknown"
)

// UnknownProduct agrupa movimientos sin producto.
const UnknownProduct = "unknown"

type Product struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	Term            string     `json:"term"`
	Rate            string     `json:"rate"`
	Invested        float64    `json:"invested"`
	AnnualRate      *float64   `json:"annualRate"`
	StartDate       *time.Time `json:"startDate"`
	MaturityDate    *time.Time `json:"maturity"`
	NoWithdrawBonus *float64   `json:"noWithdrawBonus"`
	Currency        string     `json:"currency"`
}

// IsActive acepta las variantes en español e inglés del estado activo.
func (p Product) IsActive() bool {
	switch normalizeToken(p.Status) {
	case "active", "activo", "activa":
		return true
	}
	return false
}

type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	ProductID   string    `json:"productId,omitempty"`
}

func (t Transaction) productKey() string {
	if id := strings.TrimSpace(t.ProductID); id != "" {
		return id
	}
	return UnknownProduct
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
