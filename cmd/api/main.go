package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/tidyhome/tidyhome-api/internal/config"
	"github.com/tidyhome/tidyhome-api/internal/domain/booking"
	"github.com/tidyhome/tidyhome-api/internal/domain/duration"
	"github.com/tidyhome/tidyhome-api/internal/domain/pricing"
	"github.com/tidyhome/tidyhome-api/internal/domain/reference"
	"github.com/tidyhome/tidyhome-api/internal/middleware"
	"github.com/tidyhome/tidyhome-api/internal/pkg/broker"
	"github.com/tidyhome/tidyhome-api/internal/pkg/database"
	"github.com/tidyhome/tidyhome-api/internal/pkg/logger"
	pkgresponse "github.com/tidyhome/tidyhome-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}
	pkgresponse.SetExposeErrors(cfg.IsDevelopment())

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting TidyHome API")

	redisClient, err := database.NewRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	var store booking.SessionStore = booking.NewMemoryStore(cfg.SessionTTL)
	if redisClient != nil {
		store = booking.NewRedisStore(redisClient, cfg.SessionTTL)
	}

	var publisher booking.EventPublisher = broker.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		mq, err := broker.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, logging booking events instead")
		} else {
			defer mq.Close()
			publisher = mq
		}
	}

	// ---------- Domain ----------
	referenceRepo := reference.NewRepository(nil)

	engine := pricing.NewEngine(cfg.Rates())
	rates := engine.Rates()
	log.Info().
		Str("hourly_rate", rates.Hourly.String()).
		Str("ironing_rate", rates.Ironing.String()).
		Str("vat_rate", rates.VAT.String()).
		Msg("Pricing configured")

	rules := booking.Rules{
		Engine:     engine,
		Resolver:   duration.NewResolver(cfg.HomeDurations, cfg.OfficeDurations),
		SavedCards: referenceRepo,
	}
	bookingService := booking.NewService(store, booking.NewConfirmationRegistry(), publisher, rules)

	// ---------- Handlers ----------
	bookingHandler := booking.NewHandler(bookingService, cfg.AllowedOrigins)
	referenceHandler := reference.NewHandler(referenceRepo)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, bookingHandler, referenceHandler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, bookingHandler *booking.Handler, referenceHandler *reference.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/reference", referenceHandler.Routes())
	})

	return r
}
