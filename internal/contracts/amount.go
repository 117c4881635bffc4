package contracts

import (
	"bytes"
	"encoding/json"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
)

// Amount acepta un número JSON o un texto con formato de moneda ("$1,500.50").
// Lo que no se pueda leer queda en 0 y lo rechaza la validación del monto.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*a = Amount(ledger.SanitizeAmount(raw))
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}
