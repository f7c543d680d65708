package totals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"whole", 165000, "165000.00"},
		{"one decimal", 12.5, "12.50"},
		{"zero", 0, "0.00"},
		{"half rounds up", 2.675, "2.68"},
		{"half rounds up small", 0.125, "0.13"},
		{"below half", 1.004, "1.00"},
		{"negative half rounds away from zero", -0.005, "-0.01"},
		{"tiny negative", -0.001, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₦177375.00", FormatMoney(DefaultCurrencySymbol, 177375))
	assert.Equal(t, "$1.50", FormatMoney("$", 1.5))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", FormatQuantity(3))
	assert.Equal(t, "1.5", FormatQuantity(1.5))
	assert.Equal(t, "0", FormatQuantity(0))
	assert.Equal(t, "10", FormatQuantity(10))
	assert.Equal(t, "1.333", FormatQuantity(1.333))
	assert.Equal(t, "0.125", FormatQuantity(0.125))
	assert.Equal(t, "-2", FormatQuantity(-2))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "7.5", FormatPercent(7.5))
	assert.Equal(t, "10", FormatPercent(10))
	assert.Equal(t, "0", FormatPercent(0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.68, Round2(2.675))
	assert.Equal(t, 12375.0, Round2(12375))
	assert.Equal(t, 0.13, Round2(0.125))
}
