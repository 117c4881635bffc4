package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Azell-Tech/azell-web/internal/pkg/money"
)

const (
	ReasonInvalidAmount      = "INVALID_AMOUNT"
	ReasonNoAvailableBalance = "NO_AVAILABLE_BALANCE"
	ReasonExceedsAvailable   = "AMOUNT_EXCEEDS_AVAILABLE"
)

type Validation struct {
	Accepted  bool    `json:"accepted"`
	Code      string  `json:"code,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Available float64 `json:"available"`
}

// SanitizeAmount conserva dígitos y el primer punto decimal; lo demás se descarta.
func SanitizeAmount(raw string) float64 {
	var b strings.Builder
	dot := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			dot = true
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// ValidateWithdrawal revisa, en orden: monto positivo, saldo disponible y que el monto no lo exceda.
// entry puede ser nil si el producto no tiene retiros.
func ValidateWithdrawal(p Product, entry *WithdrawalLedger, amount float64) Validation {
	available := 0.0
	if p.IsActive() {
		available = entry.Available(finiteOrZero(p.Invested))
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Validation{Code: ReasonInvalidAmount, Reason: "Monto inválido", Available: available}
	}
	// se valida el monto que se va a guardar, ya redondeado a centavos
	amount = money.Round2(amount)
	if amount <= 0 {
		return Validation{Code: ReasonInvalidAmount, Reason: "Monto inválido", Available: available}
	}
	if available <= 0 {
		return Validation{Code: ReasonNoAvailableBalance, Reason: "No hay saldo disponible para retirar", Available: available}
	}
	if amount > available {
		return Validation{
			Code:      ReasonExceedsAvailable,
			Reason:    fmt.Sprintf("El monto excede el saldo disponible ($%s)", money.FormatCurrency(available)),
			Available: available,
		}
	}
	return Validation{Accepted: true, Available: available}
}

// CanTransition sólo permite salir de En proceso hacia Aplicado o Cancelado.
func CanTransition(from, to string) bool {
	if NormalizeStatus(from) != StatusPending {
		return false
	}
	return NormalizeStatus(to) == StatusApplied || IsCancelled(to)
}
