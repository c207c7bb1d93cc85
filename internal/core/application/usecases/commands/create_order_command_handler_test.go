package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"drivefood/internal/core/application/usecases/commands"
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/services"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }
func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetAllPaymentPendingBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockFoodItemRepository struct{ mock.Mock }

func (m *MockFoodItemRepository) Add(_ context.Context, _ *menu.FoodItem) error { return nil }
func (m *MockFoodItemRepository) GetMany(ctx context.Context, ids []string) (map[string]*menu.FoodItem, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]*menu.FoodItem), args.Error(1)
}
func (m *MockFoodItemRepository) ListByRestaurant(_ context.Context, _ string) ([]*menu.FoodItem, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockOrderUoW) FoodItemRepository() ports.FoodItemRepository {
	args := m.Called()
	return args.Get(0).(ports.FoodItemRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func pizzaCatalog(t *testing.T) map[string]*menu.FoodItem {
	t.Helper()
	pizza, err := menu.NewFoodItem("pizza", "r-1", "Margherita", usd(t, "10"), nil)
	require.NoError(t, err)
	return map[string]*menu.FoodItem{"pizza": pizza}
}

func pizzaCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "c", "r-1", []services.ItemRequest{{FoodItemID: "pizza", Quantity: 1}})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	f := newFixture(t, &recordingPublisher{})
	publisher := f.publisher.(*recordingPublisher)

	created := f.createPizzaOrder(t)

	assert.Equal(t, order.Created, created.Status())
	assert.Equal(t, "23.00 USD", created.Total().String())
	require.Len(t, created.Items(), 2)
	assert.Equal(t, "Margherita", created.Items()[0].Name())

	stored := f.order(t, created.ID())
	assert.True(t, stored.Total().Equal(created.Total()))
	assert.Equal(t, []order.Status{order.Created}, publisher.statuses())
}

func TestCreateOrderCommandHandler_Handle_UnknownFoodItem(t *testing.T) {
	publisher := &recordingPublisher{}
	f := newFixture(t, publisher)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "c", "r-1", []services.ItemRequest{{FoodItemID: "burger", Quantity: 1}})
	require.NoError(t, err)

	_, err = f.create.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	orders, _, _ := f.store.Counts()
	assert.Zero(t, orders)
	assert.Empty(t, publisher.statuses())
}

func TestCreateOrderCommandHandler_Handle_ForeignRestaurantItem(t *testing.T) {
	f := newFixture(t, &recordingPublisher{})
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "c", "r-1", []services.ItemRequest{{FoodItemID: "sushi", Quantity: 1}})
	require.NoError(t, err)

	_, err = f.create.Handle(t.Context(), cmd)

	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, &recordingPublisher{})
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, &recordingPublisher{})
	_, err := h.Handle(ctx, pizzaCommand(t))
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}

	repo := new(MockOrderRepository)
	catalog := new(MockFoodItemRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FoodItemRepository").Return(catalog).Once(),
		catalog.On("GetMany", ctx, []string{"pizza"}).Return(pizzaCatalog(t), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	_, err := h.Handle(ctx, pizzaCommand(t))
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	assert.Empty(t, publisher.statuses())
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	publisher := &recordingPublisher{}

	repo := new(MockOrderRepository)
	catalog := new(MockFoodItemRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("FoodItemRepository").Return(catalog).Once(),
		catalog.On("GetMany", ctx, []string{"pizza"}).Return(pizzaCatalog(t), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher)
	_, err := h.Handle(ctx, pizzaCommand(t))
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	assert.Empty(t, publisher.statuses(), "nothing is broadcast when the commit fails")
}
