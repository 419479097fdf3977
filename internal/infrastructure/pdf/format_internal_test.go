package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"-1500.25":  "-1.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatLevel(t *testing.T) {
	assert.Equal(t, "—", formatLevel(nil))
	v := decimal.NewFromInt(10)
	assert.Equal(t, "10", formatLevel(&v))
}
