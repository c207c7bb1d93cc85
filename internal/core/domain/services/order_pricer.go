package services

import (
	"errors"
	"fmt"

	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/pkg/errs"
)

// ItemRequest is one requested dish before pricing.
type ItemRequest struct {
	FoodItemID string
	Quantity   int
}

// OrderPricer resolves requested items against the catalog and produces order lines
// carrying the catalog price.
//
// Business rules:
//   - Every requested food item must exist in the catalog
//   - Every food item must be served by the ordering restaurant
//   - Quantities must be positive
//
// Example usage:
//
//	pricer := services.NewOrderPricer()
//	lines, err := pricer.Price("restaurant-1", requests, catalog)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown dish
//	}
type OrderPricer struct{}

func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Price builds one line per request, in request order. catalog is keyed by food item id.
// A missing item is reported as not found; every other problem is joined into a single
// validation error.
func (p OrderPricer) Price(
	restaurantID string,
	requests []ItemRequest,
	catalog map[string]*menu.FoodItem,
) ([]order.LineItem, error) {
	if len(requests) == 0 {
		return nil, order.ErrItemsAreRequired
	}

	lines := make([]order.LineItem, 0, len(requests))
	var problems []error
	for i, req := range requests {
		item, ok := catalog[req.FoodItemID]
		if !ok || item.Validate() != nil {
			return nil, errs.NewObjectNotFoundError("food item", req.FoodItemID)
		}
		if !item.BelongsTo(restaurantID) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].foodItemId", i),
				fmt.Errorf("%s is not served by restaurant %s", item.ID(), restaurantID),
			))
			continue
		}

		line, err := order.NewLineItem(item.ID(), item.Name(), req.Quantity, item.Price())
		if err != nil {
			problems = append(problems, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		lines = append(lines, line)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return lines, nil
}
