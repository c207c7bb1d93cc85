package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"drivefood/internal/adapters/out/gateway"
	"drivefood/internal/adapters/out/memory"
	"drivefood/internal/core/application/usecases/commands"
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/domain/services"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/keylock"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	orders []*order.Order
}

func (p *recordingPublisher) Publish(_ context.Context, snapshot *order.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, snapshot)
}

func (p *recordingPublisher) statuses() []order.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]order.Status, 0, len(p.orders))
	for _, o := range p.orders {
		out = append(out, o.Status())
	}
	return out
}

type orderUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type paymentUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.inner.Create() }

// fixture wires the handlers over the memory store and the sandbox gateway.
type fixture struct {
	store     *memory.Store
	uow       ports.UnitOfWorkFactory
	gateway   *gateway.Sandbox
	publisher ports.OrderPublisher
	create    commands.CreateOrderCommandHandler
	initiate  commands.InitiatePaymentCommandHandler
	verify    commands.VerifyPaymentCommandHandler
}

func newFixture(t *testing.T, publisher ports.OrderPublisher, opts ...gateway.SandboxOption) *fixture {
	t.Helper()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store)
	sandbox := gateway.NewSandbox("rzp_test", "secret", opts...)
	locks := keylock.New()

	f := &fixture{
		store:     store,
		uow:       uow,
		gateway:   sandbox,
		publisher: publisher,
		create:    commands.NewCreateOrderCommandHandler(orderUoWFactory{uow}, publisher),
		initiate: commands.NewInitiatePaymentCommandHandler(
			paymentUoWFactory{uow}, sandbox, publisher, locks, 50*time.Millisecond),
		verify: commands.NewVerifyPaymentCommandHandler(
			paymentUoWFactory{uow}, sandbox, publisher, locks, 50*time.Millisecond),
	}
	f.seedMenu(t)
	return f
}

func (f *fixture) seedMenu(t *testing.T) {
	t.Helper()
	repo := f.uow.Create().FoodItemRepository()
	for _, spec := range []struct{ id, restaurant, name, price string }{
		{"pizza", "r-1", "Margherita", "10"},
		{"soda", "r-1", "Cola", "3"},
		{"sushi", "r-2", "Nigiri", "12"},
	} {
		item, err := menu.NewFoodItem(spec.id, spec.restaurant, spec.name, usd(t, spec.price), nil)
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), item))
	}
}

// createPizzaOrder places 2 × pizza at 10 plus 1 × soda at 3.
func (f *fixture) createPizzaOrder(t *testing.T) *order.Order {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "customer-1", "r-1", []services.ItemRequest{
		{FoodItemID: "pizza", Quantity: 2},
		{FoodItemID: "soda", Quantity: 1},
	})
	require.NoError(t, err)
	created, err := f.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created
}

func (f *fixture) initiatePayment(t *testing.T, orderID kernel.UUID, amount string) *payment.Intent {
	t.Helper()
	cmd, err := commands.NewInitiatePaymentCommand(orderID, usd(t, amount))
	require.NoError(t, err)
	intent, err := f.initiate.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return intent
}

func (f *fixture) receipt(t *testing.T, intentRef, paymentID string) payment.Receipt {
	t.Helper()
	r, err := payment.NewReceipt(paymentID, f.gateway.Sign(intentRef, paymentID))
	require.NoError(t, err)
	return r
}

func (f *fixture) verifyCommand(t *testing.T, orderID kernel.UUID, r payment.Receipt) commands.VerifyPaymentCommand {
	t.Helper()
	cmd, err := commands.NewVerifyPaymentCommand(orderID, r)
	require.NoError(t, err)
	return cmd
}

func (f *fixture) order(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := f.uow.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}
