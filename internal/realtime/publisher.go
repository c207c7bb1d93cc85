package realtime

import (
	"context"
	"time"

	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/ports"
)

var _ ports.OrderPublisher = (*Publisher)(nil)

// Publisher turns order snapshots into hub messages.
type Publisher struct {
	hub *Hub
	now func() time.Time
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, snapshot *order.Order) {
	p.hub.Publish(ctx, NewOrderUpdated(snapshot, p.now()))
}
