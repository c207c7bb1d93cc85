package ports

import (
	"context"

	"drivefood/internal/core/domain/model/menu"
)

// FoodItemRepository is the read side of the restaurant catalog plus seeding.
type FoodItemRepository interface {
	Add(ctx context.Context, item *menu.FoodItem) error

	// GetMany returns the items found among ids keyed by id. Unknown ids are
	// simply absent from the result.
	GetMany(ctx context.Context, ids []string) (map[string]*menu.FoodItem, error)

	// ListByRestaurant returns a restaurant's menu ordered by name.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*menu.FoodItem, error)
}
