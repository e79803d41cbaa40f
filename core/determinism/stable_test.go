package determinism

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashJSONIsStable(t *testing.T) {
	a := map[string]int{"b": 2, "a": 1}
	b := map[string]int{"a": 1, "b": 2}

	ha, err := HashJSON(a)
	require.NoError(t, err)
	hb, err := HashJSON(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.Len(t, ha.Hex(), 64)
	assert.Len(t, ha.Short(), 16)

	hc, err := HashJSON(map[string]int{"a": 1, "b": 3})
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestHashJSONRejectsUnencodable(t *testing.T) {
	_, err := HashJSON(make(chan int))
	assert.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"146.51", "USD", "$146.51"},
		{"1670.214", "USD", "$1,670.21"},
		{"500000", "USD", "$500,000.00"},
		{"-1200", "USD", "-$1,200.00"},
		{"12.5", "EUR", "€12.50"},
		{"12", "CHF", "12.00 CHF"},
		{"999", "", "999.00"},
	}

	for _, tt := range tests {
		got := NewMoney(decimal.RequireFromString(tt.amount), tt.currency).String()
		assert.Equal(t, tt.want, got)
	}
}

func TestSortedKeys(t *testing.T) {
	type k string
	assert.Equal(t, []k{"a", "b", "c"}, SortedKeys(map[k]int{"c": 3, "a": 1, "b": 2}))
}
