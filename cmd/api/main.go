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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/srgjo27/cowork_booking/internal/adapter/handler"
	"github.com/srgjo27/cowork_booking/internal/adapter/messaging"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/cowork_booking/internal/app"
	"github.com/srgjo27/cowork_booking/internal/platform/config"
	"github.com/srgjo27/cowork_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if holds, ok := a.Holds.(*memory.HoldStore); ok {
		go holds.RunEviction(ctx, time.Minute, a.Clock.Now)
	}

	go a.Sweeper.RunBackgroundCleanup(ctx, cfg.SweepInterval)

	if cfg.RabbitMQURL != "" {
		consumer := messaging.NewConsumer(cfg.RabbitMQURL, messaging.PaymentEventsQueue, a.Booking, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("payment consumer stopped", "error", err)
			}
		}()
	} else {
		log.Warn("RABBITMQ_URL not set, payment events are not consumed")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	handler.RegisterRoutes(e,
		handler.NewBookingHandler(a.Booking, log),
		handler.NewAdminHandler(a.Sweeper, log))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server startup failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "server forced to shutdown: %v\n", err)
	}

	log.Info("server exiting")
}
