package order

import (
	"errors"
	"fmt"
	"strings"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"
)

// LineItem is one ordered food item. It is immutable once built.
type LineItem struct {
	foodItemID string
	name       string
	quantity   int
	unitPrice  kernel.Money
}

// NewLineItem validates the reference, quantity and price of a line.
func NewLineItem(foodItemID string, name string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	var idErr, quantityErr error
	foodItemID = strings.TrimSpace(foodItemID)
	if foodItemID == "" {
		idErr = errs.NewValueIsRequiredError("foodItemId")
	}
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(idErr, quantityErr, unitPrice.Validate()); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		foodItemID: foodItemID,
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}, nil
}

func (l LineItem) FoodItemID() string {
	return l.foodItemID
}

func (l LineItem) Name() string {
	return l.name
}

func (l LineItem) Quantity() int {
	return l.quantity
}

func (l LineItem) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal is quantity × unit price.
func (l LineItem) Subtotal() (kernel.Money, error) {
	return l.unitPrice.Times(l.quantity)
}
