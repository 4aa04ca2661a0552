package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.99), EGP)
		require.NoError(t, err)
		assert.Equal(t, EGP, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyEGPFromFloat(6.00)
		b := NewMoneyEGPFromFloat(1.00)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "7.00", sum.StringFixed(2))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyEGPFromFloat(1)
		b, _ := NewMoney(decimal.NewFromInt(1), USD)
		_, err := a.Add(b)
		require.Error(t, err)
		_, err = a.Subtract(b)
		require.Error(t, err)
	})

	t.Run("subtracts same currency", func(t *testing.T) {
		a := NewMoneyEGPFromFloat(14.00)
		b := NewMoneyEGPFromFloat(6.00)
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "8.00", diff.StringFixed(2))
	})

	t.Run("multiplies by decimal factor", func(t *testing.T) {
		m := NewMoneyEGPFromFloat(0.10)
		result := m.Multiply(decimal.NewFromInt(10))
		assert.Equal(t, "1.00", result.StringFixed(2))
	})
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyEGPFromFloat(3.00)
	b := NewMoneyEGPFromFloat(5.00)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := b.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyEGPFromFloat(3.00)))
	assert.False(t, a.Equals(b))
	assert.True(t, ZeroEGP().IsZero())
	assert.True(t, b.IsPositive())
	assert.False(t, b.IsNegative())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	original := NewMoneyEGPFromFloat(11.50)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Money
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, original.Equals(restored))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.34"))
		assert.Equal(t, DefaultCurrency, m.Currency())
		assert.Equal(t, "12.34", m.StringFixed(2))
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(42))
	})
}
