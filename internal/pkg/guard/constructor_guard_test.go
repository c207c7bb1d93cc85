package guard_test

import (
	"errors"
	"testing"

	"drivefood/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Receipt must be created via NewReceipt")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type lineRequest struct {
		foodItemID string
		quantity   int
		guard      guard.ConstructorGuard
	}

	errLineNotConstructed := errors.New("lineRequest must be created via newLineRequest")

	newLineRequest := func(foodItemID string, quantity int) (lineRequest, error) {
		if quantity <= 0 {
			return lineRequest{}, errors.New("quantity must be positive")
		}
		return lineRequest{foodItemID: foodItemID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		line, err := newLineRequest("pizza", 2)

		require.NoError(t, err)
		require.NoError(t, line.guard.Validate(errLineNotConstructed))
		assert.Equal(t, "pizza", line.foodItemID)
	})

	t.Run("zero value", func(t *testing.T) {
		var line lineRequest

		assert.Equal(t, errLineNotConstructed, line.guard.Validate(errLineNotConstructed))
	})
}
