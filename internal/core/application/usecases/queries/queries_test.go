package queries_test

import (
	"testing"
	"time"

	"drivefood/internal/adapters/out/memory"
	"drivefood/internal/core/application/usecases/queries"
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetUnsettledOrdersQuery(t *testing.T) {
	_, err := queries.NewGetUnsettledOrdersQuery(-time.Second)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	query, err := queries.NewGetUnsettledOrdersQuery(15 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, query.OlderThan())

	assert.ErrorIs(t, queries.GetUnsettledOrdersQuery{}.Validate(), queries.ErrGetUnsettledOrdersQueryIsNotConstructed)
}

func TestNewGetMenuQuery(t *testing.T) {
	_, err := queries.NewGetMenuQuery("  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	query, err := queries.NewGetMenuQuery(" r-1 ")
	require.NoError(t, err)
	assert.Equal(t, "r-1", query.RestaurantID())

	assert.ErrorIs(t, queries.GetMenuQuery{}.Validate(), queries.ErrGetMenuQueryIsNotConstructed)
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	o := pendingOrder(t, uow, "order_first")
	handler := queries.NewGetOrderQueryHandler(uow.OrderRepository(), uow.PaymentIntentRepository())
	query, err := queries.NewGetOrderQuery(o.ID())
	require.NoError(t, err)

	view, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, o.ID(), view.ID)
	assert.Equal(t, "PAYMENT_PENDING", view.Status)
	assert.Equal(t, "order_first", view.PaymentRef)
	assert.Equal(t, "20.00 USD", view.Total.String())
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	require.Len(t, view.Payments, 1)
	assert.Equal(t, "order_first", view.Payments[0].Ref)
	assert.Equal(t, "pending", view.Payments[0].Status)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	handler := queries.NewGetOrderQueryHandler(uow.OrderRepository(), uow.PaymentIntentRepository())
	query, _ := queries.NewGetOrderQuery(kernel.NewUUID())

	view, err := handler.Handle(t.Context(), query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, view)
}

func TestGetOrderQueryHandler_Handle_InvalidQuery(t *testing.T) {
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	handler := queries.NewGetOrderQueryHandler(uow.OrderRepository(), uow.PaymentIntentRepository())

	_, err := handler.Handle(t.Context(), queries.GetOrderQuery{})

	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetUnsettledOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	pending := pendingOrder(t, uow, "order_a")
	created := newOrder(t)
	require.NoError(t, uow.OrderRepository().Add(ctx, created))
	handler := queries.NewGetUnsettledOrdersQueryHandler(uow.OrderRepository())

	all, _ := queries.NewGetUnsettledOrdersQuery(0)
	result, err := handler.Handle(ctx, all)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, pending.ID(), result[0].ID)
	assert.Equal(t, "order_a", result[0].PaymentRef)
	assert.Equal(t, pending.UpdatedAt(), result[0].PendingSince)

	stale, _ := queries.NewGetUnsettledOrdersQuery(time.Hour)
	result, err = handler.Handle(ctx, stale)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetMenuQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	for _, spec := range []struct{ id, restaurant, name string }{
		{"tea", "r-1", "Tea"},
		{"biryani", "r-1", "Biryani"},
		{"sushi", "r-2", "Sushi"},
	} {
		item, err := menu.NewFoodItem(spec.id, spec.restaurant, spec.name, usd(t, "4"), []string{"Hot"})
		require.NoError(t, err)
		require.NoError(t, uow.FoodItemRepository().Add(ctx, item))
	}
	handler := queries.NewGetMenuQueryHandler(uow.FoodItemRepository())
	query, _ := queries.NewGetMenuQuery("r-1")

	result, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Biryani", result[0].Name)
	assert.Equal(t, "Tea", result[1].Name)
	assert.Equal(t, []string{"hot"}, result[0].Tags)

	unknown, _ := queries.NewGetMenuQuery("r-9")
	result, err = handler.Handle(ctx, unknown)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLineItem("pizza", "Margherita", 2, usd(t, "10"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "r-1", []order.LineItem{line}, time.Now())
	require.NoError(t, err)
	return o
}

func pendingOrder(t *testing.T, uow ports.UnitOfWork, ref string) *order.Order {
	t.Helper()
	ctx := t.Context()
	o := newOrder(t)
	now := time.Now()
	intent, err := payment.NewIntent(ref, o.ID(), o.Total(), now)
	require.NoError(t, err)
	require.NoError(t, o.InitiatePayment(ref, now))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.PaymentIntentRepository().Add(ctx, intent))
	return o
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}
