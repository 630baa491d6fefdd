package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/calport/calport-bookings/internal/http/handlers"
	"github.com/calport/calport-bookings/internal/repo/postgres"
	"github.com/calport/calport-bookings/internal/service"
	"github.com/calport/calport-bookings/pkg/cache"
	"github.com/calport/calport-bookings/pkg/config"
	"github.com/calport/calport-bookings/pkg/database"
	"github.com/calport/calport-bookings/pkg/events"
	"github.com/calport/calport-bookings/pkg/logger"
	mw "github.com/calport/calport-bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	idempotencyStore, err := cache.NewRedisStore(cfg.Redis)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer idempotencyStore.Close()

	eventTypeRepo := postgres.NewEventTypeRepository(pool)
	availabilityRepo := postgres.NewAvailabilityRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)

	eventTypeService := service.NewEventTypeService(eventTypeRepo)
	scheduleService := service.NewScheduleService(availabilityRepo, eventTypeRepo, bookingRepo, eventBus, cfg)
	bookingService := service.NewBookingService(bookingRepo, eventTypeRepo, eventBus)

	h := handlers.New(eventTypeService, scheduleService, bookingService)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)
	r.Use(mw.Idempotency(idempotencyStore, cfg.Scheduling.IdempotencyTTL))

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down scheduling service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Scheduling service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting scheduling service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Scheduling service error", "error", err)
		os.Exit(1)
	}
}
