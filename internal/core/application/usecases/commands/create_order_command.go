package commands

import (
	"errors"
	"fmt"
	"strings"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/services"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIDIsRequired   = errs.NewValueIsRequiredError("customerId")
	ErrRestaurantIDIsRequired = errs.NewValueIsRequiredError("restaurantId")
	ErrItemsAreRequired       = errs.NewValueIsRequiredError("items")
)

// CreateOrderCommand represents a request to place an order with one restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "customer-1", "restaurant-1",
//	    []services.ItemRequest{{FoodItemID: "pizza", Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   string
	restaurantID string
	items        []services.ItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape: identifiers present, at least
// one item, every quantity positive. Prices are resolved later from the catalog.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID string,
	restaurantID string,
	items []services.ItemRequest,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// Items returns a copy of the requested items.
func (c CreateOrderCommand) Items() []services.ItemRequest {
	items := make([]services.ItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

// FoodItemIDs returns the distinct food item ids in request order.
func (c CreateOrderCommand) FoodItemIDs() []string {
	seen := make(map[string]struct{}, len(c.items))
	ids := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.FoodItemID]; ok {
			continue
		}
		seen[item.FoodItemID] = struct{}{}
		ids = append(ids, item.FoodItemID)
	}
	return ids
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return ErrRestaurantIDIsRequired
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var problems []error
	normalized := make([]services.ItemRequest, 0, len(items))
	for i, item := range items {
		item.FoodItemID = strings.TrimSpace(item.FoodItemID)
		if item.FoodItemID == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].foodItemId", i)))
		}
		if item.Quantity <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity),
			))
		}
		normalized = append(normalized, item)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.items = normalized
	return nil
}
