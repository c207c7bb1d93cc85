package commands

import (
	"context"
	"time"

	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/services"
	"drivefood/internal/core/ports"
)

// CreateOrderCommandHandler prices the requested items against the catalog, stores
// the order in CREATED status and broadcasts it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, hubPublisher)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(created.Total()) // 23.00 INR
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderPublisher
	pricer     services.OrderPricer
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.OrderPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		pricer:     services.NewOrderPricer(),
		now:        time.Now,
	}
}

// Handle creates the order in one transaction. The broadcast happens only after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog, err := uow.FoodItemRepository().GetMany(ctx, cmd.FoodItemIDs())
	if err != nil {
		return nil, err
	}

	lines, err := h.pricer.Price(cmd.RestaurantID(), cmd.Items(), catalog)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.RestaurantID(), lines, h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, created)
	return created, nil
}
