// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, the payment gateway and order event delivery.
package ports

import (
	"context"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and payment reference changes of an existing order.
	// Returns an ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPaymentPendingBefore returns orders still awaiting payment verification whose
	// last change happened before cutoff, oldest first.
	GetAllPaymentPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
