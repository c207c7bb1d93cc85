package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivefood/cmd"
	httpadapter "drivefood/internal/adapters/in/http"
	"drivefood/internal/adapters/out/postgres"
	"drivefood/internal/platform/observability"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	instruments, shutdownTelemetry, err := observability.Init(ctx, "drivefood")
	if err != nil {
		log.Fatalf("Error initializing telemetry: %v", err)
	}
	logger := instruments.Logger

	gormDB := mustGormOpen(configs, logger)
	app := cmd.NewCompositionRoot(configs, instruments, gormDB)
	if gormDB == nil {
		seedDemoMenu(ctx, &app, configs)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	startWebServer(ctx, &app, configs, logger)

	jobManager.StopAll()
	app.Hub().Close()
	if err := app.Registry().CloseAll(); err != nil {
		logger.Warn("closing websocket connections", slog.String("error", err.Error()))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTelemetry(flushCtx); err != nil {
		logger.Warn("flushing telemetry", slog.String("error", err.Error()))
	}
}

func mustGormOpen(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if !configs.UsePostgres() {
		logger.Warn("DB_HOST is not set, keeping state in memory")
		return nil
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to postgres: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}
	return gormDB
}

func seedDemoMenu(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) {
	items, err := cmd.DemoMenu(configs.PaymentCurrency)
	if err != nil {
		log.Fatalf("Error building demo menu: %v", err)
	}
	if err := app.SeedMenu(ctx, items); err != nil {
		log.Fatalf("Error seeding demo menu: %v", err)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e, err := httpadapter.NewRouter(ctx, app.CreateServer(), httpadapter.RouterConfig{
		ClientOrigin: configs.ClientOrigin,
		Websocket:    app.CreateWebsocketHandler().Handle,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		logger.Info("server is listening", slog.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.String("error", err.Error()))
	}
}
