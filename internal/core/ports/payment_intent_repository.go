package ports

import (
	"context"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
)

// PaymentIntentRepository stores the local copy of gateway intents.
type PaymentIntentRepository interface {
	Add(ctx context.Context, intent *payment.Intent) error

	// Update persists the settlement of an existing intent.
	Update(ctx context.Context, intent *payment.Intent) error

	// Get retrieves an intent by its gateway reference, or an ObjectNotFoundError.
	Get(ctx context.Context, id string) (*payment.Intent, error)

	// ListByOrder returns every intent of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Intent, error)
}
