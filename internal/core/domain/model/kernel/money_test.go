package kernel_test

import (
	"testing"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("normalizes currency", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.5"), " usd ")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "10.50 USD", m.String())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "USD")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("rejects bad currency and amount together", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "dollars")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "currency")
	})
}

func TestMoneyFromString(t *testing.T) {
	m, err := kernel.MoneyFromString("23.00", "USD")
	require.NoError(t, err)

	other, err := kernel.MoneyFromString("23", "USD")
	require.NoError(t, err)
	assert.True(t, m.Equal(other))

	_, err = kernel.MoneyFromString("twenty", "USD")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	ten, _ := kernel.MoneyFromString("10", "USD")
	three, _ := kernel.MoneyFromString("3", "USD")

	twenty, err := ten.Times(2)
	require.NoError(t, err)

	total, err := twenty.Add(three)
	require.NoError(t, err)

	expected, _ := kernel.MoneyFromString("23", "USD")
	assert.True(t, expected.Equal(total))

	rupees, _ := kernel.MoneyFromString("3", "INR")
	_, err = ten.Add(rupees)
	assert.Equal(t, kernel.ErrCurrencyMismatch, err)
	assert.False(t, three.Equal(rupees))
}

func TestMoney_ZeroValueIsInvalid(t *testing.T) {
	var m kernel.Money

	assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
}
