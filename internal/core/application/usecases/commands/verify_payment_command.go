package commands

import (
	"errors"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/pkg/guard"
)

var ErrVerifyPaymentCommandIsNotConstructed = errors.New(
	"VerifyPaymentCommand must be created via NewVerifyPaymentCommand constructor",
)

// VerifyPaymentCommand submits the gateway receipt for an order's pending payment.
type VerifyPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	receipt payment.Receipt

	guard guard.ConstructorGuard
}

func NewVerifyPaymentCommand(orderID kernel.UUID, receipt payment.Receipt) (VerifyPaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), receipt.Validate()); err != nil {
		return VerifyPaymentCommand{}, err
	}

	return VerifyPaymentCommand{
		orderID: orderID,
		receipt: receipt,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPaymentCommandIsNotConstructed)
}

func (c VerifyPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c VerifyPaymentCommand) Receipt() payment.Receipt {
	return c.receipt
}
