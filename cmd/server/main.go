package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/config"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/database"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/fx"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/logging"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/quote"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/repository"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/scheduler"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/service"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New(logging.Config{})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	// Market data providers
	financeClient := yahoo.NewFinanceClient()
	quotes := quote.NewCachedSource(quote.NewYahooSource(financeClient), cfg.Market.QuoteTTL)
	rates := fx.NewProvider(
		fx.NewYahooRateSource(financeClient),
		cfg.Market.RateTTL,
		cfg.Market.RateTimeout,
		cfg.Market.RateFallback,
		log,
	)

	// Repositories and services
	positionRepo := repository.NewPositionRepository(db)

	systemService := service.NewSystemService(db)
	positionService := service.NewPositionService(positionRepo, quotes, log)
	valuationService := service.NewValuationService(
		positionRepo,
		quotes,
		rates,
		cfg.Market.QuoteTimeout,
		cfg.Market.QuoteFetchLimit,
		log,
	)

	// Background cache refresh
	sched := scheduler.New(log)
	if cfg.Market.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.Market.RefreshSchedule, service.NewRefreshJob(valuationService)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register refresh job")
		}
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(systemService, positionService, valuationService, rates, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
