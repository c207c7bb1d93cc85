// Package ws is the websocket transport for order observers. Each connection gets its
// own hub subscription and is listed in the connection registry while it is open.
package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/realtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	defaultWriteWait    = 10 * time.Second
	defaultPongWait     = 60 * time.Second
	defaultPingInterval = 54 * time.Second
	maxInboundMessage   = 4096
)

// Handler upgrades GET /ws requests and streams orderUpdated messages to the client.
// An optional orderId query parameter restricts delivery to one order.
type Handler struct {
	hub      *realtime.Hub
	registry *realtime.Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger

	writeWait    time.Duration
	pongWait     time.Duration
	pingInterval time.Duration
	now          func() time.Time
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithAllowedOrigin restricts the Origin header. "*" or empty accepts any origin.
func WithAllowedOrigin(origin string) Option {
	return func(h *Handler) {
		if origin == "" || origin == "*" {
			h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
			return
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		}
	}
}

// WithKeepalive sets the ping interval. The pong deadline is derived from it.
func WithKeepalive(pingInterval time.Duration) Option {
	return func(h *Handler) {
		if pingInterval > 0 {
			h.pingInterval = pingInterval
			h.pongWait = pingInterval * 10 / 9
		}
	}
}

func NewHandler(hub *realtime.Hub, registry *realtime.Registry, opts ...Option) *Handler {
	h := &Handler{
		hub:      hub,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger:       slog.Default(),
		writeWait:    defaultWriteWait,
		pongWait:     defaultPongWait,
		pingInterval: defaultPingInterval,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "ws")
	return h
}

// Handle serves one observer until it disconnects or the hub closes.
func (h *Handler) Handle(c echo.Context) error {
	var filter *kernel.UUID
	if raw := c.QueryParam("orderId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "orderId must be a UUID").SetInternal(err)
		}
		filter = &id
	}

	sub, err := h.hub.Subscribe()
	if err != nil {
		if errors.Is(err, realtime.ErrHubClosed) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "shutting down")
		}
		return err
	}
	defer sub.Unsubscribe()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the client.
		h.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	id := uuid.NewString()
	if err = h.registry.Register(realtime.Connection{
		ID:          id,
		RemoteAddr:  c.RealIP(),
		ConnectedAt: h.now(),
	}, conn.Close); err != nil {
		return nil
	}
	defer h.registry.Unregister(id)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, sub, filter, done)
	return nil
}

// readPump discards client messages. It exists to process control frames and to
// notice the disconnect.
func (h *Handler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxInboundMessage)
	_ = conn.SetReadDeadline(h.now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(h.now().Add(h.pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, sub *realtime.Subscription, filter *kernel.UUID, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-sub.C():
			if !ok {
				_ = conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					h.now().Add(h.writeWait),
				)
				return
			}
			if filter != nil && msg.Order.ID != filter.String() {
				continue
			}
			_ = conn.SetWriteDeadline(h.now().Add(h.writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, h.now().Add(h.writeWait)); err != nil {
				return
			}
		}
	}
}
