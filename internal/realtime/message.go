package realtime

import (
	"time"

	"drivefood/internal/core/domain/model/order"
)

// EventOrderUpdated is the event name observers listen for.
const EventOrderUpdated = "orderUpdated"

// Message is one broadcast. It carries a full order snapshot taken at the transition.
type Message struct {
	Event      string        `json:"event"`
	Order      OrderSnapshot `json:"order"`
	OccurredAt time.Time     `json:"occurredAt"`
}

type OrderSnapshot struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customerId"`
	RestaurantID string         `json:"restaurantId"`
	Items        []LineSnapshot `json:"items"`
	Total        string         `json:"total"`
	Currency     string         `json:"currency"`
	Status       string         `json:"status"`
	PaymentRef   string         `json:"paymentRef,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type LineSnapshot struct {
	FoodItemID string `json:"foodItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
}

// NewOrderUpdated snapshots o.
func NewOrderUpdated(o *order.Order, occurredAt time.Time) Message {
	items := o.Items()
	lines := make([]LineSnapshot, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineSnapshot{
			FoodItemID: item.FoodItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Amount().StringFixed(2),
		})
	}

	return Message{
		Event: EventOrderUpdated,
		Order: OrderSnapshot{
			ID:           o.ID().String(),
			CustomerID:   o.CustomerID(),
			RestaurantID: o.RestaurantID(),
			Items:        lines,
			Total:        o.Total().Amount().StringFixed(2),
			Currency:     o.Total().Currency(),
			Status:       o.Status().String(),
			PaymentRef:   o.PaymentRef(),
			CreatedAt:    o.CreatedAt(),
			UpdatedAt:    o.UpdatedAt(),
		},
		OccurredAt: occurredAt.UTC(),
	}
}
