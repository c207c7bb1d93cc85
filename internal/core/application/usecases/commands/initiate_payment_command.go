package commands

import (
	"errors"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand asks to start paying amount for an order.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

func NewInitiatePaymentCommand(orderID kernel.UUID, amount kernel.Money) (InitiatePaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), amount.Validate()); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return InitiatePaymentCommand{
		orderID: orderID,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount is what the client intends to pay. It must equal the order total.
func (c InitiatePaymentCommand) Amount() kernel.Money {
	return c.amount
}
