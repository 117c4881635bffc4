package pkg

import (
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func NewID() ulid.ULID {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy())
}

func ParseULID(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ulid.ULID{}, errors.New("ULID string cannot be empty")
	}
	parsed, err := ulid.Parse(value)
	if err != nil {
		return ulid.ULID{}, errors.New("invalid ULID format")
	}
	return parsed, nil
}

// ParseOptionalULID devuelve nil si el valor viene vacío.
func ParseOptionalULID(value *string) (*ulid.ULID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := ParseULID(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// Now usa UTC para que los días de los movimientos no dependan del servidor.
func Now() time.Time {
	return time.Now().UTC()
}

// Reference arma folios como WDR-7K3M9Q2A a partir de la parte aleatoria del ULID.
func Reference(prefix string, id ulid.ULID) string {
	s := id.String()
	return prefix + "-" + s[len(s)-8:]
}
