package http

import (
	"time"

	"drivefood/internal/core/application/usecases/queries"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/realtime"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type NewOrderItem struct {
	FoodItemID string `json:"foodItemId"`
	Quantity   int    `json:"quantity"`
}

type NewOrder struct {
	CustomerID   string         `json:"customerId"`
	RestaurantID string         `json:"restaurantId"`
	Items        []NewOrderItem `json:"items"`
}

// PaymentRequest accepts the amount as a JSON number or a decimal string.
type PaymentRequest struct {
	OrderID  string          `json:"orderId,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

type ReceiptRequest struct {
	OrderID   string `json:"orderId,omitempty"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type OrderItem struct {
	FoodItemID string `json:"foodItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
}

type Payment struct {
	Ref       string    `json:"ref"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	ReceiptID string    `json:"receiptId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID           types.UUID  `json:"id"`
	CustomerID   string      `json:"customerId"`
	RestaurantID string      `json:"restaurantId"`
	Items        []OrderItem `json:"items"`
	Total        string      `json:"total"`
	Currency     string      `json:"currency"`
	Status       string      `json:"status"`
	PaymentRef   string      `json:"paymentRef,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Payments     []Payment   `json:"payments,omitempty"`
}

type PaymentIntent struct {
	OrderID    types.UUID `json:"orderId"`
	PaymentRef string     `json:"paymentRef"`
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	KeyID      string     `json:"keyId,omitempty"`
}

type Settlement struct {
	OrderID    types.UUID `json:"orderId"`
	Status     string     `json:"status"`
	PaymentRef string     `json:"paymentRef"`
	Outcome    string     `json:"outcome"`
	Replayed   bool       `json:"replayed"`
}

type UnsettledOrder struct {
	ID           types.UUID `json:"id"`
	RestaurantID string     `json:"restaurantId"`
	Total        string     `json:"total"`
	Currency     string     `json:"currency"`
	PaymentRef   string     `json:"paymentRef"`
	PendingSince time.Time  `json:"pendingSince"`
}

type MenuItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Currency string   `json:"currency"`
	Tags     []string `json:"tags"`
}

type Connection struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remoteAddr"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type Connections struct {
	Count       int          `json:"count"`
	Connections []Connection `json:"connections"`
}

func toOrder(o *order.Order) Order {
	items := o.Items()
	response := Order{
		ID:           o.ID().Bytes(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		Items:        make([]OrderItem, 0, len(items)),
		Total:        o.Total().Amount().StringFixed(2),
		Currency:     o.Total().Currency(),
		Status:       o.Status().String(),
		PaymentRef:   o.PaymentRef(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	for _, item := range items {
		response.Items = append(response.Items, OrderItem{
			FoodItemID: item.FoodItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Amount().StringFixed(2),
		})
	}
	return response
}

func toOrderView(view *queries.GetOrderQueryResponse) Order {
	response := Order{
		ID:           view.ID.Bytes(),
		CustomerID:   view.CustomerID,
		RestaurantID: view.RestaurantID,
		Items:        make([]OrderItem, 0, len(view.Items)),
		Total:        view.Total.Amount().StringFixed(2),
		Currency:     view.Total.Currency(),
		Status:       view.Status,
		PaymentRef:   view.PaymentRef,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
		Payments:     make([]Payment, 0, len(view.Payments)),
	}
	for _, item := range view.Items {
		response.Items = append(response.Items, OrderItem{
			FoodItemID: item.FoodItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.Amount().StringFixed(2),
		})
	}
	for _, p := range view.Payments {
		response.Payments = append(response.Payments, Payment{
			Ref:       p.Ref,
			Amount:    p.Amount.Amount().StringFixed(2),
			Status:    p.Status,
			ReceiptID: p.ReceiptID,
			CreatedAt: p.CreatedAt,
		})
	}
	return response
}

func toPaymentIntent(intent *payment.Intent, keyID string) PaymentIntent {
	return PaymentIntent{
		OrderID:    intent.OrderID().Bytes(),
		PaymentRef: intent.ID(),
		Amount:     intent.Amount().Amount().StringFixed(2),
		Currency:   intent.Amount().Currency(),
		Status:     order.PaymentPending.String(),
		KeyID:      keyID,
	}
}

func toSettlement(s payment.Settlement) Settlement {
	return Settlement{
		OrderID:    s.OrderID.Bytes(),
		Status:     s.Status.String(),
		PaymentRef: s.PaymentRef,
		Outcome:    string(s.Outcome),
		Replayed:   s.Replayed,
	}
}

func toConnections(conns []realtime.Connection) Connections {
	response := Connections{Count: len(conns), Connections: make([]Connection, 0, len(conns))}
	for _, c := range conns {
		response.Connections = append(response.Connections, Connection{
			ID:          c.ID,
			RemoteAddr:  c.RemoteAddr,
			ConnectedAt: c.ConnectedAt,
		})
	}
	return response
}
