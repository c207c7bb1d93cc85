package queries

import (
	"context"

	"drivefood/internal/core/ports"
)

type GetMenuQueryHandler struct {
	items ports.FoodItemRepository
}

func NewGetMenuQueryHandler(items ports.FoodItemRepository) GetMenuQueryHandler {
	return GetMenuQueryHandler{items: items}
}

// Handle returns the items sorted by name. An unknown restaurant has an empty menu.
func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) ([]GetMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items, err := h.items.ListByRestaurant(ctx, query.RestaurantID())
	if err != nil {
		return nil, err
	}

	response := make([]GetMenuQueryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, GetMenuQueryResponse{
			ID:    item.ID(),
			Name:  item.Name(),
			Price: item.Price(),
			Tags:  item.Tags(),
		})
	}
	return response, nil
}
