package ports

import (
	"context"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
)

// PaymentGateway is the contract of the external payment provider.
//
// Failures are reported as errs.GatewayError; a call that exceeded its deadline has
// Timeout set. A forged receipt is not an error: Verify returns Authentic false.
type PaymentGateway interface {
	// Initiate asks the provider for a new intent and returns its reference.
	Initiate(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (string, error)

	// Verify checks that receipt was issued for intentRef and whether it was seen before.
	Verify(ctx context.Context, intentRef string, receipt payment.Receipt) (payment.Verification, error)
}
