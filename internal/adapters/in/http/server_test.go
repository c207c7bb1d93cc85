package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "drivefood/internal/adapters/in/http"
	"drivefood/internal/adapters/out/gateway"
	"drivefood/internal/adapters/out/memory"
	"drivefood/internal/core/application/usecases/commands"
	"drivefood/internal/core/application/usecases/queries"
	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/menu"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/keylock"
	"drivefood/internal/realtime"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.inner.Create() }

type paymentUoWFactory struct{ inner ports.UnitOfWorkFactory }

func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.inner.Create() }

type api struct {
	echo     *echo.Echo
	gateway  *gateway.Sandbox
	hub      *realtime.Hub
	registry *realtime.Registry
}

func newAPI(t *testing.T) *api {
	t.Helper()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore())
	repos := uow.Create()
	for _, spec := range []struct{ id, name, price string }{
		{"pizza", "Margherita", "10"},
		{"soda", "Cola", "3"},
	} {
		price, err := kernel.MoneyFromString(spec.price, "INR")
		require.NoError(t, err)
		item, err := menu.NewFoodItem(spec.id, "r-1", spec.name, price, []string{"Popular"})
		require.NoError(t, err)
		require.NoError(t, repos.FoodItemRepository().Add(t.Context(), item))
	}

	hub := realtime.NewHub()
	t.Cleanup(hub.Close)
	registry := realtime.NewRegistry()
	publisher := realtime.NewPublisher(hub)
	sandbox := gateway.NewSandbox("rzp_test", "secret")
	locks := keylock.New()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:     commands.NewCreateOrderCommandHandler(orderUoWFactory{uow}, publisher),
		InitiatePayment: commands.NewInitiatePaymentCommandHandler(paymentUoWFactory{uow}, sandbox, publisher, locks, time.Second),
		VerifyPayment:   commands.NewVerifyPaymentCommandHandler(paymentUoWFactory{uow}, sandbox, publisher, locks, time.Second),
		GetOrder:        queries.NewGetOrderQueryHandler(repos.OrderRepository(), repos.PaymentIntentRepository()),
		GetUnsettled:    queries.NewGetUnsettledOrdersQueryHandler(repos.OrderRepository()),
		GetMenu:         queries.NewGetMenuQueryHandler(repos.FoodItemRepository()),
	}, registry, "INR", sandbox.KeyID())

	e, err := httpadapter.NewRouter(t.Context(), server, httpadapter.RouterConfig{ClientOrigin: "https://drivefood.example"})
	require.NoError(t, err)
	return &api{echo: e, gateway: sandbox, hub: hub, registry: registry}
}

func (a *api) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const pizzaOrder = `{"customerId":"customer-1","restaurantId":"r-1","items":[{"foodItemId":"pizza","quantity":2},{"foodItemId":"soda","quantity":1}]}`

func (a *api) createOrder(t *testing.T) httpadapter.Order {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/orders", pizzaOrder)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpadapter.Order](t, rec)
}

func TestServer_Home(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"msg":"Hello in DriveFood."}`, rec.Body.String())
}

func TestServer_Health(t *testing.T) {
	rec := newAPI(t).do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_OpenAPIDocument(t *testing.T) {
	rec := newAPI(t).do(t, http.MethodGet, "/api/openapi.yaml", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}

func TestServer_CreateOrder(t *testing.T) {
	a := newAPI(t)

	created := a.createOrder(t)

	assert.Equal(t, "23.00", created.Total)
	assert.Equal(t, "INR", created.Currency)
	assert.Equal(t, "CREATED", created.Status)
	assert.Empty(t, created.PaymentRef)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "10.00", created.Items[0].UnitPrice)
}

func TestServer_CreateOrder_RejectedByOpenAPIValidation(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, "/api/v1/orders", `{"customerId":"c","restaurantId":"r-1","items":[{"foodItemId":"pizza","quantity":0}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httpadapter.ContentTypeProblemJSON, rec.Header().Get(echo.HeaderContentType))
	problem := decode[httpadapter.ProblemDetail](t, rec)
	assert.Equal(t, "validation", string(problem.Kind))
	assert.Equal(t, "/api/v1/orders", problem.Instance)
}

func TestServer_CreateOrder_UnknownFoodItem(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, "/api/v1/orders", `{"customerId":"c","restaurantId":"r-1","items":[{"foodItemId":"caviar","quantity":1}]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", string(decode[httpadapter.ProblemDetail](t, rec).Kind))
}

func TestServer_PaymentFlow(t *testing.T) {
	a := newAPI(t)
	sub, err := a.hub.Subscribe()
	require.NoError(t, err)
	defer sub.Unsubscribe()
	created := a.createOrder(t)
	base := "/api/v1/orders/" + created.ID.String()

	rec := a.do(t, http.MethodPost, base+"/payment", `{"amount":"23.00"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	intent := decode[httpadapter.PaymentIntent](t, rec)
	assert.Equal(t, "PAYMENT_PENDING", intent.Status)
	assert.Equal(t, "rzp_test", intent.KeyID)
	assert.Equal(t, "23.00", intent.Amount)

	signature := a.gateway.Sign(intent.PaymentRef, "pay_1")
	receipt := `{"paymentId":"pay_1","signature":"` + signature + `"}`
	rec = a.do(t, http.MethodPost, base+"/payment/verify", receipt)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	settlement := decode[httpadapter.Settlement](t, rec)
	assert.Equal(t, "PAID", settlement.Status)
	assert.Equal(t, "paid", settlement.Outcome)
	assert.False(t, settlement.Replayed)

	rec = a.do(t, http.MethodPost, base+"/payment/verify", receipt)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[httpadapter.Settlement](t, rec).Replayed)

	rec = a.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[httpadapter.Order](t, rec)
	assert.Equal(t, "PAID", view.Status)
	require.Len(t, view.Payments, 1)
	assert.Equal(t, "verified", view.Payments[0].Status)

	statuses := make([]string, 0, 3)
	for len(sub.C()) > 0 {
		statuses = append(statuses, (<-sub.C()).Order.Status)
	}
	assert.Equal(t, []string{"CREATED", "PAYMENT_PENDING", "PAID"}, statuses)
}

func TestServer_InitiatePayment_AmountMismatch(t *testing.T) {
	a := newAPI(t)
	created := a.createOrder(t)

	rec := a.do(t, http.MethodPost, "/api/v1/orders/"+created.ID.String()+"/payment", `{"amount":22.5}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decode[httpadapter.ProblemDetail](t, rec)
	assert.Equal(t, "amount_mismatch", string(problem.Kind))
	assert.Contains(t, problem.Detail, "expected 23.00 INR")
}

func TestServer_VerifyPayment_WrongState(t *testing.T) {
	a := newAPI(t)
	created := a.createOrder(t)

	rec := a.do(t, http.MethodPost, "/api/v1/orders/"+created.ID.String()+"/payment/verify", `{"paymentId":"pay_1","signature":"x"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_state", string(decode[httpadapter.ProblemDetail](t, rec).Kind))
}

func TestServer_LegacyRoutes(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodPost, "/order/create", pizzaOrder)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[httpadapter.Order](t, rec)

	rec = a.do(t, http.MethodPost, "/order/payment", `{"orderId":"`+created.ID.String()+`","amount":23}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	intent := decode[httpadapter.PaymentIntent](t, rec)

	rec = a.do(t, http.MethodPost, "/order/payment/verify",
		`{"orderId":"`+created.ID.String()+`","paymentId":"pay_9","signature":"forged"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	settlement := decode[httpadapter.Settlement](t, rec)
	assert.Equal(t, "failed", settlement.Outcome)
	assert.Equal(t, "PAYMENT_FAILED", settlement.Status)
	assert.Equal(t, intent.PaymentRef, settlement.PaymentRef)
}

func TestServer_GetOrder_Errors(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/api/v1/orders/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListUnsettledOrders(t *testing.T) {
	a := newAPI(t)
	created := a.createOrder(t)
	rec := a.do(t, http.MethodPost, "/api/v1/orders/"+created.ID.String()+"/payment", `{"amount":23}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/v1/orders/unsettled?olderThan=0s", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	orders := decode[[]httpadapter.UnsettledOrder](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, created.ID, orders[0].ID)

	rec = a.do(t, http.MethodGet, "/api/v1/orders/unsettled?olderThan=soon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetMenu(t *testing.T) {
	a := newAPI(t)

	rec := a.do(t, http.MethodGet, "/api/v1/restaurants/r-1/menu", "")

	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]httpadapter.MenuItem](t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "Cola", items[0].Name)
	assert.Equal(t, "3.00", items[0].Price)
	assert.Equal(t, []string{"popular"}, items[0].Tags)
}

func TestServer_ListConnections(t *testing.T) {
	a := newAPI(t)
	require.NoError(t, a.registry.Register(realtime.Connection{ID: "c-1", RemoteAddr: "10.0.0.1", ConnectedAt: time.Now()}, nil))

	rec := a.do(t, http.MethodGet, "/api/v1/connections", "")

	require.Equal(t, http.StatusOK, rec.Code)
	conns := decode[httpadapter.Connections](t, rec)
	assert.Equal(t, 1, conns.Count)
	assert.Equal(t, "c-1", conns.Connections[0].ID)
}

func TestServer_CORS(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set(echo.HeaderOrigin, "https://drivefood.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()

	a.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://drivefood.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
