package payment

import (
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/order"
)

// Outcome is the business result of a verification.
type Outcome string

const (
	OutcomePaid   Outcome = "paid"
	OutcomeFailed Outcome = "failed"
)

// Settlement is returned by payment verification on both the success and the
// rejected-receipt path. Replayed is set when the receipt had already settled the
// order and nothing was written.
type Settlement struct {
	OrderID    kernel.UUID
	Status     order.Status
	PaymentRef string
	Outcome    Outcome
	Replayed   bool
}

// NewSettlement builds the result for o as settled by intent.
func NewSettlement(o *order.Order, intent *Intent, replayed bool) Settlement {
	return Settlement{
		OrderID:    o.ID(),
		Status:     o.Status(),
		PaymentRef: intent.ID(),
		Outcome:    intent.Outcome(),
		Replayed:   replayed,
	}
}
