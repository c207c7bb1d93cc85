package menu_test

import (
	"testing"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFoodItem(t *testing.T) {
	price, err := kernel.MoneyFromString("10", "USD")
	require.NoError(t, err)

	t.Run("normalizes tags", func(t *testing.T) {
		f, err := menu.NewFoodItem("pizza", "r-1", "Margherita", price, []string{" Veg", "cheese", "veg", ""})

		require.NoError(t, err)
		require.NoError(t, f.Validate())
		assert.Equal(t, []string{"cheese", "veg"}, f.Tags())
		assert.True(t, f.BelongsTo("r-1"))
		assert.False(t, f.BelongsTo("r-2"))
		assert.True(t, f.Price().Equal(price))
	})

	t.Run("joins missing fields", func(t *testing.T) {
		f, err := menu.NewFoodItem("", "", "", kernel.Money{}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "foodItemId")
		assert.Contains(t, err.Error(), "restaurantId")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "money must be created")
	})

	t.Run("tags are copied", func(t *testing.T) {
		f, _ := menu.NewFoodItem("pizza", "r-1", "Margherita", price, []string{"veg"})

		tags := f.Tags()
		tags[0] = "meat"

		assert.Equal(t, []string{"veg"}, f.Tags())
	})
}
