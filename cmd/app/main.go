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

	"foodorder/cmd"
	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	gormDB, err := postgres.Open(postgres.DSN(
		config.DBHost,
		config.DBPort,
		config.DBUser,
		config.DBPassword,
		config.DBName,
		config.DBSslMode,
	))
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(config, gormDB)

	jobManager := app.CreateJobManager(config, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := newWebServer(ctx, app, logger)
	if err != nil {
		log.Fatalf("create web server: %v", err)
	}

	go func() {
		logger.Info("http server started", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
	logger.Info("shut down")
}

func newWebServer(ctx context.Context, app cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(httpin.RequestLogger(logger))

	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(app.CreateHTTPHandlers(), logger)
	if err := httpin.Register(e, server, doc); err != nil {
		return nil, err
	}
	return e, nil
}
