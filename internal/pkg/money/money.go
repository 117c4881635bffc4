package money

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Round2 redondea a 2 decimales, mitad alejándose de cero.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// NormalizePercent interpreta 0 < v <= 1 como fracción y cualquier otro valor como porcentaje entero.
// ok es false cuando el valor no existe.
func NormalizePercent(v *float64) (pct float64, ok bool) {
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}
	n := *v
	if n > 0 && n <= 1 {
		n *= 100
	}
	return Round2(n), true
}

func FormatCurrency(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	return humanize.Comma(int64(math.Round(n)))
}

// FormatPercent devuelve "12%" o "—" si el valor es desconocido.
func FormatPercent(v *float64) string {
	pct, ok := NormalizePercent(v)
	if !ok {
		return "—"
	}
	return humanize.FtoaWithDigits(pct, 2) + "%"
}

// BpsToFraction convierte puntos base a fracción anual (1200 -> 0.12).
func BpsToFraction(bps int) float64 {
	f, _ := decimal.NewFromInt(int64(bps)).Div(decimal.NewFromInt(10000)).Float64()
	return f
}
