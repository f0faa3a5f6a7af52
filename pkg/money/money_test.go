package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "100.50", "100.5"},
		{"grouped", "1,037,400.00", "1037400"},
		{"currency prefix", "TSH 5,200.00", "5200"},
		{"whitespace", "  42  ", "42"},
		{"negative", "-12.30", "-12.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)), d)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseAmount("   ")
		assert.ErrorIs(t, err, ErrEmptyAmount)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := ParseAmount("1.2.3")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestMoney(t *testing.T) {
	t.Run("decimal round trip", func(t *testing.T) {
		m, err := NewFromDecimal(decimal.RequireFromString("1037400.00"), TZS)
		require.NoError(t, err)
		assert.Equal(t, TZS, m.Currency())
		assert.True(t, m.Decimal().Equal(decimal.RequireFromString("1037400")), m.Decimal())
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := NewFromDecimal(decimal.NewFromInt(1), "ZZZ")
		assert.ErrorIs(t, err, ErrUnknownCurrency)
	})

	t.Run("add same currency", func(t *testing.T) {
		a := New(10_00, TZS)
		b := New(5_50, TZS)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(15_50), sum.Amount())
	})

	t.Run("add mixed currencies fails", func(t *testing.T) {
		_, err := New(1, TZS).Add(New(1, USD))
		assert.ErrorIs(t, err, ErrCurrencyMix)
	})
}

func TestVATPercent(t *testing.T) {
	t.Run("standard rate", func(t *testing.T) {
		pct, ok := VATPercent(decimal.NewFromInt(200), decimal.NewFromInt(36))
		require.True(t, ok)
		assert.True(t, pct.Equal(decimal.NewFromInt(18)), pct)
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		pct, ok := VATPercent(
			decimal.RequireFromString("4256496.00"),
			decimal.RequireFromString("765169.28"))
		require.True(t, ok)
		assert.True(t, pct.Equal(decimal.RequireFromString("17.98")), pct)
	})

	t.Run("no rate without positive net", func(t *testing.T) {
		_, ok := VATPercent(decimal.Zero, decimal.NewFromInt(36))
		assert.False(t, ok)
	})
}

func TestVATAmount(t *testing.T) {
	vat := VATAmount(decimal.NewFromInt(200), decimal.NewFromInt(18))
	assert.True(t, vat.Equal(decimal.NewFromInt(36)), vat)
}

func TestTestDataGenerator(t *testing.T) {
	t.Run("deterministic for a seed", func(t *testing.T) {
		a := NewTestDataGenerator(11).InvoiceText(3)
		b := NewTestDataGenerator(11).InvoiceText(3)
		assert.Equal(t, a, b)
	})

	t.Run("item amounts are self consistent", func(t *testing.T) {
		g := NewTestDataGenerator(7)
		for i := 0; i < 20; i++ {
			item := g.Item()
			assert.True(t, item.Value.Equal(item.Rate.Mul(decimal.NewFromInt(int64(item.Qty)))))
			assert.Positive(t, item.Qty)
			assert.NotEmpty(t, item.Description)
		}
	})
}

func TestGroupAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1037400", "1,037,400.00"},
		{"5200", "5,200.00"},
		{"999", "999.00"},
		{"-1234.5", "-1,234.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupAmount(decimal.RequireFromString(tt.in)))
	}
}
