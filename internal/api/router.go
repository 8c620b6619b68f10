package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/galaxytrack/Stock-Tracker-Backend/internal/api/middleware"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/config"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	positionService *service.PositionService,
	valuationService *service.ValuationService,
	rates service.RateProvider,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.NewLogger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(positionService)
			r.Get("/", positionHandler.List)
			r.Post("/", positionHandler.Create)
			r.Delete("/", positionHandler.Clear)
			r.Put("/{symbol}/price", positionHandler.UpdatePrice)
			r.Delete("/{symbol}", positionHandler.Delete)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(valuationService, rates)
			r.Get("/valuation", portfolioHandler.Valuation)
			r.Get("/rate", portfolioHandler.Rate)
		})
	})

	return r
}
