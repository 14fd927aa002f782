package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"tavola/internal/config"
	realtimeinfra "tavola/internal/modules/realtime/infrastructure"
	realtimetransport "tavola/internal/modules/realtime/interface"
	reservationport "tavola/internal/modules/reservations/application/port"
	reservationusecase "tavola/internal/modules/reservations/application/usecase"
	reservationdomain "tavola/internal/modules/reservations/domain"
	reservationinfra "tavola/internal/modules/reservations/infrastructure"
	reservationtransport "tavola/internal/modules/reservations/interface"
	restaurantusecase "tavola/internal/modules/restaurants/application/usecase"
	restaurantinfra "tavola/internal/modules/restaurants/infrastructure"
	restauranttransport "tavola/internal/modules/restaurants/interface"
	"tavola/internal/platform/broker"
	"tavola/internal/shared/auth"
	"tavola/internal/shared/logging"
)

func main() {
	// Load .env first so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := logging.NewWithFile(cfg.Logging.Dir, logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	// Upstream API clients.
	reservationAPI := reservationinfra.NewReservationHTTPClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, nil)
	restaurantAPI := restaurantinfra.NewRestaurantHTTPClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, nil)

	// Realtime feed plus optional Kafka mirror of every reservation event.
	hub := realtimeinfra.NewHub()
	var events reservationport.EventPublisher = hub
	var kafkaPublisher *broker.KafkaPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher = broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		events = broker.Fanout{hub, kafkaPublisher}
		slog.Info("kafka publisher enabled", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	} else {
		slog.Info("kafka publisher disabled, feed only")
	}

	rules := reservationdomain.Rules{
		RequireEmailFormat: cfg.Validation.RequireEmailFormat,
		MaxPartySize:       cfg.Validation.MaxPartySize,
	}
	policy := reservationdomain.TransitionAnyToAny
	if cfg.Validation.StrictStatusFlow {
		policy = reservationdomain.TransitionStrict
	}

	directory := restaurantusecase.NewDirectory(restaurantAPI)
	bookTable := reservationusecase.NewBookTableUseCase(directory, reservationAPI, events, rules)
	panel := reservationusecase.NewAdminPanel(reservationAPI, events, policy)

	// Token validation is optional; without a secret the admin surface stays
	// open, which matches local development against a stub API.
	var validator auth.TokenValidator
	if cfg.Security.JWTSecret != "" {
		validator = auth.NewJWTValidator(cfg.Security.JWTSecret)
	} else {
		slog.Warn("JWT_SECRET not set, admin routes are unauthenticated")
	}

	// Mirror events published by other gateway instances into the local feed.
	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	defer stopBridge()
	broker.StartKafkaBridge(bridgeCtx, hub, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ConsumeTopics)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	reservationtransport.NewHandler(bookTable, panel).Register(e, auth.Middleware(validator))
	restauranttransport.NewHandler(directory).Register(e, auth.Middleware(validator))

	feed := realtimetransport.NewAdminFeedHandler(hub, validator)
	e.GET("/ws/admin/:token", feed)
	e.GET("/ws/admin", feed)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", slog.Any("error", err))
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			slog.Warn("kafka close error", slog.Any("error", err))
		}
	}
}
