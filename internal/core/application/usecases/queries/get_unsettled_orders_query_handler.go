package queries

import (
	"context"
	"time"

	"drivefood/internal/core/ports"
)

type GetUnsettledOrdersQueryHandler struct {
	orders ports.OrderRepository
	now    func() time.Time
}

func NewGetUnsettledOrdersQueryHandler(orders ports.OrderRepository) GetUnsettledOrdersQueryHandler {
	return GetUnsettledOrdersQueryHandler{orders: orders, now: time.Now}
}

// Handle returns the matching orders, longest waiting first.
func (h GetUnsettledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnsettledOrdersQuery,
) ([]GetUnsettledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// Inclusive of orders changed exactly at the cutoff.
	cutoff := h.now().Add(-query.OlderThan()).Add(time.Nanosecond)
	orders, err := h.orders.GetAllPaymentPendingBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	response := make([]GetUnsettledOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, GetUnsettledOrdersQueryResponse{
			ID:           o.ID(),
			RestaurantID: o.RestaurantID(),
			Total:        o.Total(),
			PaymentRef:   o.PaymentRef(),
			PendingSince: o.UpdatedAt(),
		})
	}
	return response, nil
}
