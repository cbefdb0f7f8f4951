package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(4599, EUR)
		require.NoError(t, err)
		assert.Equal(t, int64(4599), m.MinorUnits())
		assert.Equal(t, EUR, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(100, "")
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("adds amounts in the same currency", func(t *testing.T) {
		sum, err := NewMoneyEUR(4599).Add(NewMoneyEUR(401))
		require.NoError(t, err)
		assert.Equal(t, int64(5000), sum.MinorUnits())
	})

	t.Run("fails to add different currencies", func(t *testing.T) {
		usd, err := NewMoney(100, USD)
		require.NoError(t, err)
		_, err = NewMoneyEUR(100).Add(usd)
		require.Error(t, err)
	})

	t.Run("multiplies by quantity", func(t *testing.T) {
		total := NewMoneyEUR(4599).MultiplyByInt(2)
		assert.Equal(t, int64(9198), total.MinorUnits())
	})

	t.Run("zero is zero", func(t *testing.T) {
		assert.True(t, Zero(EUR).IsZero())
		assert.False(t, NewMoneyEUR(1).IsZero())
		assert.True(t, NewMoneyEUR(-1).IsNegative())
	})
}

func TestMoneyMajorUnitsString(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole euros", 1000, "10.00"},
		{"cents remainder", 4599, "45.99"},
		{"single cent", 1, "0.01"},
		{"zero", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMoneyEUR(tt.cents).MajorUnitsString())
		})
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyEUR(4599))
	require.NoError(t, err)
	assert.JSONEq(t, `{"minor_units":4599,"currency":"EUR"}`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal(data, &m))
	assert.True(t, m.Equals(NewMoneyEUR(4599)))
}
