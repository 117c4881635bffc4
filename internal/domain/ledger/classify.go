package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var kindTokens = map[string]Kind{
	"withdrawal": KindWithdrawal,
	"withdraw":   KindWithdrawal,
	"retiro":     KindWithdrawal,
	"yield":      KindYield,
	"deposit":    KindDeposit,
	"investment": KindInvestment,
	"fee":        KindFee,
}

// fallbackRule se evalúa sólo cuando el movimiento no trae tipo.
type fallbackRule struct {
	kind  Kind
	match func(description, reference string) bool
}

// Orden importa: gana la primera regla que coincide.
var fallbackRules = []fallbackRule{
	{kind: KindWithdrawal, match: looksLikeWithdrawal},
}

func looksLikeWithdrawal(description, reference string) bool {
	if strings.Contains(normalizeToken(description), "retiro") {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(reference)), "WDR")
}

// Classify resuelve el tipo semántico de un movimiento.
func Classify(t Transaction) Kind {
	tag := normalizeToken(t.Type)
	if kind, ok := kindTokens[tag]; ok {
		return kind
	}
	if tag != "" {
		return KindUnknown
	}
	for _, rule := range fallbackRules {
		if rule.match(t.Description, t.Reference) {
			return rule.kind
		}
	}
	return KindUnknown
}

func IsWithdrawal(t Transaction) bool {
	return Classify(t) == KindWithdrawal
}

type StatusClass int

const (
	StatusOther StatusClass = iota
	StatusApplied
	StatusPending
)

func (s StatusClass) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusPending:
		return "pending"
	default:
		return "other"
	}
}

var appliedTokens = map[string]struct{}{
	"aplicado": {}, "aplicada": {}, "applied": {}, "completed": {},
}

var pendingTokens = map[string]struct{}{
	"enproceso": {}, "enprogreso": {}, "proceso": {}, "pendiente": {},
	"pending": {}, "processing": {}, "inprocess": {}, "inprogress": {},
}

var cancelledTokens = map[string]struct{}{
	"cancelado": {}, "cancelada": {}, "cancelled": {}, "canceled": {},
}

// NormalizeStatus clasifica el estado libre; lo que no reconoce queda como StatusOther.
func NormalizeStatus(status string) StatusClass {
	token := normalizeToken(status)
	if _, ok := appliedTokens[token]; ok {
		return StatusApplied
	}
	if _, ok := pendingTokens[token]; ok {
		return StatusPending
	}
	return StatusOther
}

func IsCancelled(status string) bool {
	_, ok := cancelledTokens[normalizeToken(status)]
	return ok
}

// normalizeToken pasa a minúsculas, quita acentos y deja sólo letras y dígitos.
func normalizeToken(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
