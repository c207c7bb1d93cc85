package ports

import (
	"context"

	"drivefood/internal/core/domain/model/order"
)

// OrderPublisher announces an order snapshot to connected observers.
// Delivery is best effort and Publish never blocks on observers.
type OrderPublisher interface {
	Publish(ctx context.Context, snapshot *order.Order)
}
