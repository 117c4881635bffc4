package money_test

import (
	"math"
	"testing"

	"github.com/Azell-Tech/azell-web/internal/pkg/money"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{3.28767, 3.29},
		{2.345, 2.35},
		{-2.345, -2.35},
		{0.005, 0.01},
		{10, 10},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, money.Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestRound2Idempotent(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 0.004, 1.005, 3.29, 1234.5678, 99999.995} {
		once := money.Round2(v)
		assert.Equal(t, once, money.Round2(once), "value %v", v)
	}
}

func TestNormalizePercent(t *testing.T) {
	t.Parallel()

	fraction, ok := money.NormalizePercent(ptr(0.12))
	assert.True(t, ok)
	whole, ok := money.NormalizePercent(ptr(12))
	assert.True(t, ok)
	assert.Equal(t, 12.0, fraction)
	assert.Equal(t, fraction, whole)

	one, _ := money.NormalizePercent(ptr(1))
	assert.Equal(t, 100.0, one)

	zero, ok := money.NormalizePercent(ptr(0))
	assert.True(t, ok)
	assert.Equal(t, 0.0, zero)

	_, ok = money.NormalizePercent(nil)
	assert.False(t, ok)
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "7,000", money.FormatCurrency(7000))
	assert.Equal(t, "1,234,568", money.FormatCurrency(1234567.89))
	assert.Equal(t, "0", money.FormatCurrency(math.NaN()))
	assert.Equal(t, "0", money.FormatCurrency(math.Inf(-1)))
	assert.Equal(t, "-2,500", money.FormatCurrency(-2500))
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12%", money.FormatPercent(ptr(0.12)))
	assert.Equal(t, "—", money.FormatPercent(nil))
}

func TestBpsToFraction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.12, money.BpsToFraction(1200))
	assert.Equal(t, 0.0, money.BpsToFraction(0))
}
