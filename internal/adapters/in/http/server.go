// Package http is the JSON API of the ordering service.
package http

import (
	"net/http"
	"strings"
	"time"

	"drivefood/internal/core/application/usecases/commands"
	"drivefood/internal/core/application/usecases/queries"
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/domain/services"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/realtime"

	"github.com/labstack/echo/v4"
)

const defaultUnsettledAge = 15 * time.Minute

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	InitiatePayment commands.InitiatePaymentCommandHandler
	VerifyPayment   commands.VerifyPaymentCommandHandler
	GetOrder        queries.GetOrderQueryHandler
	GetUnsettled    queries.GetUnsettledOrdersQueryHandler
	GetMenu         queries.GetMenuQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	registry *realtime.Registry
	currency string
	keyID    string
}

// NewServer builds the server. currency is used when a payment request omits it;
// keyID is handed to clients so they can open the gateway checkout.
func NewServer(handlers Handlers, registry *realtime.Registry, currency string, keyID string) *Server {
	return &Server{
		handlers: handlers,
		registry: registry,
		currency: currency,
		keyID:    keyID,
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/", s.Home)
	e.GET("/health", s.Health)
	e.GET("/api/openapi.yaml", s.OpenAPI)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/unsettled", s.ListUnsettledOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/payment", s.InitiatePayment)
	v1.POST("/orders/:id/payment/verify", s.VerifyPayment)
	v1.GET("/restaurants/:id/menu", s.GetMenu)
	v1.GET("/connections", s.ListConnections)

	legacy := e.Group("/order")
	legacy.POST("/create", s.CreateOrder)
	legacy.POST("/payment", s.LegacyInitiatePayment)
	legacy.POST("/payment/verify", s.LegacyVerifyPayment)
}

func (s *Server) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "msg": "Hello in DriveFood."})
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func (s *Server) OpenAPI(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
}

// CreateOrder handles POST /api/v1/orders and the legacy POST /order/create.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return err
	}

	items := make([]services.ItemRequest, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, services.ItemRequest{FoodItemID: item.FoodItemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.CustomerID, body.RestaurantID, items)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOrder(created))
}

func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderView(view))
}

// ListUnsettledOrders handles GET /api/v1/orders/unsettled?olderThan=15m.
func (s *Server) ListUnsettledOrders(c echo.Context) error {
	olderThan := defaultUnsettledAge
	if raw := c.QueryParam("olderThan"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("olderThan", err)
		}
		olderThan = d
	}

	query, err := queries.NewGetUnsettledOrdersQuery(olderThan)
	if err != nil {
		return err
	}

	orders, err := s.handlers.GetUnsettled.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]UnsettledOrder, 0, len(orders))
	for _, o := range orders {
		response = append(response, UnsettledOrder{
			ID:           o.ID.Bytes(),
			RestaurantID: o.RestaurantID,
			Total:        o.Total.Amount().StringFixed(2),
			Currency:     o.Total.Currency(),
			PaymentRef:   o.PaymentRef,
			PendingSince: o.PendingSince,
		})
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) InitiatePayment(c echo.Context) error {
	var body PaymentRequest
	if err := c.Bind(&body); err != nil {
		return err
	}
	return s.initiatePayment(c, c.Param("id"), body)
}

// LegacyInitiatePayment handles POST /order/payment with the order id in the body.
func (s *Server) LegacyInitiatePayment(c echo.Context) error {
	var body PaymentRequest
	if err := c.Bind(&body); err != nil {
		return err
	}
	return s.initiatePayment(c, body.OrderID, body)
}

func (s *Server) initiatePayment(c echo.Context, rawID string, body PaymentRequest) error {
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return err
	}

	currency := strings.TrimSpace(body.Currency)
	if currency == "" {
		currency = s.currency
	}
	amount, err := kernel.NewMoney(body.Amount, currency)
	if err != nil {
		return err
	}

	cmd, err := commands.NewInitiatePaymentCommand(id, amount)
	if err != nil {
		return err
	}

	intent, err := s.handlers.InitiatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPaymentIntent(intent, s.keyID))
}

func (s *Server) VerifyPayment(c echo.Context) error {
	var body ReceiptRequest
	if err := c.Bind(&body); err != nil {
		return err
	}
	return s.verifyPayment(c, c.Param("id"), body)
}

// LegacyVerifyPayment handles POST /order/payment/verify with the order id in the body.
func (s *Server) LegacyVerifyPayment(c echo.Context) error {
	var body ReceiptRequest
	if err := c.Bind(&body); err != nil {
		return err
	}
	return s.verifyPayment(c, body.OrderID, body)
}

func (s *Server) verifyPayment(c echo.Context, rawID string, body ReceiptRequest) error {
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return err
	}

	receipt, err := payment.NewReceipt(body.PaymentID, body.Signature)
	if err != nil {
		return err
	}

	cmd, err := commands.NewVerifyPaymentCommand(id, receipt)
	if err != nil {
		return err
	}

	settlement, err := s.handlers.VerifyPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSettlement(settlement))
}

func (s *Server) GetMenu(c echo.Context) error {
	query, err := queries.NewGetMenuQuery(c.Param("id"))
	if err != nil {
		return err
	}

	items, err := s.handlers.GetMenu.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]MenuItem, 0, len(items))
	for _, item := range items {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		response = append(response, MenuItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.Amount().StringFixed(2),
			Currency: item.Price.Currency(),
			Tags:     tags,
		})
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) ListConnections(c echo.Context) error {
	return c.JSON(http.StatusOK, toConnections(s.registry.Snapshot()))
}
