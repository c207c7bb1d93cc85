package cmd

import (
	"context"
	"log/slog"

	httpadapter "drivefood/internal/adapters/in/http"
	"drivefood/internal/adapters/in/ws"
	"drivefood/internal/adapters/out/gateway"
	"drivefood/internal/adapters/out/memory"
	"drivefood/internal/adapters/out/postgres"
	"drivefood/internal/core/application/usecases/commands"
	"drivefood/internal/core/application/usecases/queries"
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/ports"
	"drivefood/internal/jobs"
	"drivefood/internal/pkg/keylock"
	"drivefood/internal/platform/observability"
	"drivefood/internal/realtime"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	instruments *observability.Instruments
	uowFactory  ports.UnitOfWorkFactory
	hub         *realtime.Hub
	registry    *realtime.Registry
	publisher   *realtime.Publisher
	gateway     ports.PaymentGateway
	locks       *keylock.Locker
}

// NewCompositionRoot wires the application. gormDB may be nil, in which case state is
// kept in memory.
func NewCompositionRoot(config Config, instruments *observability.Instruments, gormDB *gorm.DB) CompositionRoot {
	if instruments == nil {
		instruments = observability.Discard()
	}
	logger := instruments.Logger

	var uowFactory ports.UnitOfWorkFactory
	if gormDB != nil {
		uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	} else {
		uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}

	hub := realtime.NewHub(
		realtime.WithBuffer(config.HubSubscriberBuffer),
		realtime.WithHubLogger(logger),
		realtime.WithHubMeter(instruments.Meter("drivefood/realtime")),
	)
	registry := realtime.NewRegistry(
		realtime.WithRegistryLogger(logger),
		realtime.WithRegistryMeter(instruments.Meter("drivefood/realtime")),
	)

	sandbox := gateway.NewSandbox(config.GatewayKeyID, config.GatewaySecret)
	traced := gateway.NewTraced(sandbox,
		gateway.WithLogger(logger),
		gateway.WithTracer(instruments.Tracer("drivefood/gateway")),
		gateway.WithMeter(instruments.Meter("drivefood/gateway")),
	)

	return CompositionRoot{
		config:      config,
		instruments: instruments,
		uowFactory:  uowFactory,
		hub:         hub,
		registry:    registry,
		publisher:   realtime.NewPublisher(hub),
		gateway:     traced,
		locks:       keylock.New(),
	}
}

func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) Registry() *realtime.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitiatePaymentCommandHandler(f, c.gateway, c.publisher, c.locks, c.config.GatewayTimeout)
}

func (c *CompositionRoot) CreateVerifyPaymentCommandHandler() commands.VerifyPaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyPaymentCommandHandler(f, c.gateway, c.publisher, c.locks, c.config.GatewayTimeout)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderQueryHandler(uow.OrderRepository(), uow.PaymentIntentRepository())
}

func (c *CompositionRoot) CreateGetUnsettledOrdersQueryHandler() queries.GetUnsettledOrdersQueryHandler {
	return queries.NewGetUnsettledOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.uowFactory.Create().FoodItemRepository())
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		InitiatePayment: c.CreateInitiatePaymentCommandHandler(),
		VerifyPayment:   c.CreateVerifyPaymentCommandHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		GetUnsettled:    c.CreateGetUnsettledOrdersQueryHandler(),
		GetMenu:         c.CreateGetMenuQueryHandler(),
	}, c.registry, c.config.PaymentCurrency, c.config.GatewayKeyID)
}

func (c *CompositionRoot) CreateWebsocketHandler() *ws.Handler {
	return ws.NewHandler(c.hub, c.registry,
		ws.WithLogger(c.instruments.Logger),
		ws.WithAllowedOrigin(c.config.ClientOrigin),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateGetUnsettledOrdersQueryHandler()
	return jobs.NewJobManager(c.config.ReportSchedule, handler, c.config.UnsettledAfter, c.registry, c.instruments.Logger)
}

// SeedMenu adds items to the catalog, skipping ids that already exist.
func (c *CompositionRoot) SeedMenu(ctx context.Context, items []*menu.FoodItem) error {
	repo := c.uowFactory.Create().FoodItemRepository()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID())
	}
	existing, err := repo.GetMany(ctx, ids)
	if err != nil {
		return err
	}

	for _, item := range items {
		if _, ok := existing[item.ID()]; ok {
			continue
		}
		if err := repo.Add(ctx, item); err != nil {
			return err
		}
	}
	c.instruments.Logger.InfoContext(ctx, "menu seeded", slog.Int("items", len(items)-len(existing)))
	return nil
}

// DemoMenu is the catalog a fresh instance starts with.
func DemoMenu(currency string) ([]*menu.FoodItem, error) {
	entries := []struct {
		id, restaurant, name, price string
		tags                        []string
	}{
		{"margherita", "pizzeria-napoli", "Margherita", "249", []string{"veg", "pizza"}},
		{"diavola", "pizzeria-napoli", "Diavola", "329", []string{"spicy", "pizza"}},
		{"tiramisu", "pizzeria-napoli", "Tiramisu", "149", []string{"dessert"}},
		{"paneer-tikka", "tandoor-house", "Paneer Tikka", "219.50", []string{"veg", "starter"}},
		{"butter-chicken", "tandoor-house", "Butter Chicken", "349", []string{"main"}},
		{"garlic-naan", "tandoor-house", "Garlic Naan", "59", []string{"veg", "bread"}},
	}

	items := make([]*menu.FoodItem, 0, len(entries))
	for _, e := range entries {
		price, err := kernel.MoneyFromString(e.price, currency)
		if err != nil {
			return nil, err
		}
		item, err := menu.NewFoodItem(e.id, e.restaurant, e.name, price, e.tags)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}
