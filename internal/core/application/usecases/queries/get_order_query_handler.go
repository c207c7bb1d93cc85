package queries

import (
	"context"

	"drivefood/internal/core/ports"
)

// GetOrderQueryHandler reads through the repositories so it works on every store.
type GetOrderQueryHandler struct {
	orders  ports.OrderRepository
	intents ports.PaymentIntentRepository
}

func NewGetOrderQueryHandler(orders ports.OrderRepository, intents ports.PaymentIntentRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, intents: intents}
}

// Handle returns an ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	intents, err := h.intents.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	items := o.Items()
	response := &GetOrderQueryResponse{
		ID:           o.ID(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		Items:        make([]OrderItemView, 0, len(items)),
		Total:        o.Total(),
		Status:       o.Status().String(),
		PaymentRef:   o.PaymentRef(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Payments:     make([]PaymentView, 0, len(intents)),
	}
	for _, item := range items {
		response.Items = append(response.Items, OrderItemView{
			FoodItemID: item.FoodItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}
	for _, intent := range intents {
		response.Payments = append(response.Payments, PaymentView{
			Ref:       intent.ID(),
			Amount:    intent.Amount(),
			Status:    intent.Status().String(),
			ReceiptID: intent.ReceiptID(),
			CreatedAt: intent.CreatedAt(),
			UpdatedAt: intent.UpdatedAt(),
		})
	}

	return response, nil
}
