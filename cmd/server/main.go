package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/buildmart/internal/config"
	"github.com/Skotchmaster/buildmart/internal/events"
	"github.com/Skotchmaster/buildmart/internal/httpserver"
	"github.com/Skotchmaster/buildmart/internal/logging"
	loggingmw "github.com/Skotchmaster/buildmart/internal/middleware/logging"
	"github.com/Skotchmaster/buildmart/internal/schema"
	"github.com/Skotchmaster/buildmart/internal/service"
	"github.com/Skotchmaster/buildmart/internal/store/connect"
	"github.com/Skotchmaster/buildmart/internal/validation"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	st, closeStore, err := connect.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	cancel()
	if err != nil {
		logger.Warn("database_unavailable", "reason", "store calls will fail until restart", "error", err)
	} else {
		logger.Info("database_connected", "database", st.Name())
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers)

	v := validation.New()
	deps := &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc:       &service.CatalogService{Store: st, Validator: v},
			Publisher: publisher,
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc:       &service.OrderService{Store: st, Validator: v},
			Publisher: publisher,
		},
		StatusHandler: &httpserver.StatusHTTP{
			Store:          st,
			Schemas:        schema.Build(),
			DatabaseURLSet: cfg.DatabaseURL != "",
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("publisher_close_failed", "error", err)
	}
	if err := closeStore(shutdownCtx); err != nil {
		logger.Error("store_close_failed", "error", err)
	}

	logger.Info("server_stopped")
}
