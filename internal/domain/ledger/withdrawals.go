package ledger

import (
	"fmt"
	"math"
	"sort"

	"github.com/Azell-Tech/azell-web/internal/pkg/money"
)

type WithdrawalLedger struct {
	PendingSum float64       `json:"pendingSum"`
	AppliedSum float64       `json:"appliedSum"`
	Pending    []Transaction `json:"pending"`
}

// Available es lo que aún puede retirarse de un principal invertido.
func (l *WithdrawalLedger) Available(invested float64) float64 {
	saldo := math.Max(0, invested-l.appliedOrZero())
	return money.Round2(math.Max(0, saldo-l.pendingOrZero()))
}

func (l *WithdrawalLedger) appliedOrZero() float64 {
	if l == nil {
		return 0
	}
	return l.AppliedSum
}

func (l *WithdrawalLedger) pendingOrZero() float64 {
	if l == nil {
		return 0
	}
	return l.PendingSum
}

// AggregateWithdrawals suma retiros pendientes y aplicados por producto.
// Un registro repetido (producto, referencia, |monto|, estado, día) cuenta una sola vez;
// se conserva el primero que aparece. Estados no reconocidos no suman.
func AggregateWithdrawals(txns []Transaction) map[string]*WithdrawalLedger {
	out := make(map[string]*WithdrawalLedger)
	seen := make(map[string]struct{}, len(txns))

	for _, t := range txns {
		if !IsWithdrawal(t) {
			continue
		}
		status := NormalizeStatus(t.Status)
		if status == StatusOther {
			continue
		}

		pid := t.productKey()
		amount := math.Abs(t.Amount)
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}

		key := dedupKey(pid, t, amount, status)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		entry, ok := out[pid]
		if !ok {
			entry = &WithdrawalLedger{Pending: []Transaction{}}
			out[pid] = entry
		}

		switch status {
		case StatusApplied:
			entry.AppliedSum += amount
		case StatusPending:
			entry.PendingSum += amount
			entry.Pending = append(entry.Pending, t)
		}
	}

	for _, entry := range out {
		entry.AppliedSum = money.Round2(entry.AppliedSum)
		entry.PendingSum = money.Round2(entry.PendingSum)
		sortByDateDesc(entry.Pending)
	}
	return out
}

func dedupKey(productID string, t Transaction, amount float64, status StatusClass) string {
	return fmt.Sprintf("%s|%s|%.2f|%s|%s", productID, t.Reference, amount, status, dayKey(truncateDay(t.Date)))
}

// sortByDateDesc ordena por día descendente y, a igual día, por id descendente.
func sortByDateDesc(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		di, dj := truncateDay(txns[i].Date), truncateDay(txns[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return txns[i].ID > txns[j].ID
	})
}

// SortTransactions devuelve una copia ordenada como la muestra el tablero.
func SortTransactions(txns []Transaction) []Transaction {
	out := make([]Transaction, len(txns))
	copy(out, txns)
	sortByDateDesc(out)
	return out
}
