package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-api/internal/config"
	"github.com/jwalitptl/clinic-api/internal/form"
	"github.com/jwalitptl/clinic-api/internal/handler/catalog"
	"github.com/jwalitptl/clinic-api/internal/handler/clinic"
	"github.com/jwalitptl/clinic-api/internal/handler/doctor"
	"github.com/jwalitptl/clinic-api/internal/handler/health"
	"github.com/jwalitptl/clinic-api/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-api/internal/handler/user"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/router"
	clinicService "github.com/jwalitptl/clinic-api/internal/service/clinic"
	doctorService "github.com/jwalitptl/clinic-api/internal/service/doctor"
	userService "github.com/jwalitptl/clinic-api/internal/service/user"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize logger
	appLogger := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	})
	log.Logger = appLogger.Zerolog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics share one registry with the HTTP collectors
	registry := promclient.NewRegistry()
	httpMetrics := prometheus.New(registry)
	appMetrics := metrics.NewMetrics(registry, "clinic", "api")

	// Initialize database
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	clinicRepo := postgres.NewClinicRepository(db, appMetrics)
	userRepo := postgres.NewUserRepository(db, appMetrics)
	healthRepo := postgres.NewBaseRepository(db, appMetrics)

	// Doctor submissions are forwarded to the log or the broker
	next := doctorService.LogContinuation(appLogger)
	if cfg.Doctor.Forward == config.ForwardBroker {
		broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig(), appLogger, appMetrics)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
		next = doctorService.BrokerContinuation(broker, cfg.Doctor.ForwardChannel)
	}

	validator := form.NewValidator(form.WithStrictEnumerations(cfg.Doctor.StrictEnumerations))

	// Initialize services
	clinicSvc := clinicService.NewService(clinicRepo, cfg.Cache.ClinicTTL, appMetrics)
	userSvc := userService.NewService(userRepo)
	doctorSvc := doctorService.NewService(form.NewGate(validator, appMetrics), next)

	// Setup router
	var rateLimit rate.Limit
	if cfg.RateLimit.Enabled {
		rateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = cfg.CORS.AllowedMethods
	corsConfig.AllowHeaders = cfg.CORS.AllowedHeaders
	corsConfig.MaxAge = cfg.CORS.MaxAge

	r := router.NewRouter(
		router.RouterConfig{
			Mode:          cfg.Server.Mode,
			RateLimit:     rateLimit,
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    corsConfig,
			CatalogMaxAge: cfg.Cache.CatalogMaxAge,
			Pages:         middleware.PageSecurityConfig{
				FormActions:    cfg.Pages.FormActions,
				FrameAncestors: cfg.Pages.FrameAncestors,
				HSTSMaxAge:     cfg.Pages.HSTSMaxAge,
			},
		},
		httpMetrics,
		catalog.NewHandler(),
		doctor.NewHandler(doctorSvc),
		health.NewHandler(&healthRepo, httpMetrics.Handler()),
		clinic.NewHandler(clinicSvc),
		user.NewHandler(userSvc),
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("doctor_forward", cfg.Doctor.Forward).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
