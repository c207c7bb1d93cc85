package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterConfig carries what the echo instance needs beyond the server itself.
type RouterConfig struct {
	// ClientOrigin is the allowed CORS origin. Empty means any origin.
	ClientOrigin string
	// Websocket serves GET /ws when set.
	Websocket echo.HandlerFunc
	Logger    *slog.Logger
}

// NewRouter builds the echo instance with CORS, request logging, OpenAPI request
// validation and problem+json error rendering.
func NewRouter(ctx context.Context, server *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	validator, err := NewRequestValidator(ctx)
	if err != nil {
		return nil, err
	}

	origin := cfg.ClientOrigin
	if origin == "" {
		origin = "*"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: origin != "*",
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "incoming request", attrs...)
			return nil
		},
	}))
	e.Use(validator)

	server.Register(e)
	if cfg.Websocket != nil {
		e.GET("/ws", cfg.Websocket)
	}

	return e, nil
}
