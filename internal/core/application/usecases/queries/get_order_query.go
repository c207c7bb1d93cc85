// Package queries contains read operations for clients and background jobs.
// Queries return flat read models and never change state.
package queries

import (
	"errors"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery looks up one order together with its payment attempts.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the client view of an order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	CustomerID   string
	RestaurantID string
	Items        []OrderItemView
	Total        kernel.Money
	Status       string
	PaymentRef   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Payments     []PaymentView
}

type OrderItemView struct {
	FoodItemID string
	Name       string
	Quantity   int
	UnitPrice  kernel.Money
}

// PaymentView is one payment attempt, oldest first in GetOrderQueryResponse.
type PaymentView struct {
	Ref       string
	Amount    kernel.Money
	Status    string
	ReceiptID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
