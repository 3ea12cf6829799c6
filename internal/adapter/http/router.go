package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sportiq/picoin/internal/adapter/http/handler"
	"github.com/sportiq/picoin/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler   *handler.WalletHandler
	RewardHandler   *handler.RewardHandler
	ExchangeHandler *handler.ExchangeHandler
	AuditHandler    *handler.AuditHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
	RateLimiter     *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Recover(cfg.Logger))

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Wallets
		r.Route("/wallets", func(r chi.Router) {
			r.Get("/{userID}", cfg.WalletHandler.GetBalance)
			r.Get("/{userID}/transactions", cfg.WalletHandler.GetTransactions)
			r.Get("/{userID}/withdrawals", cfg.ExchangeHandler.ListByUser)
		})

		// Rewards
		r.Route("/rewards", func(r chi.Router) {
			r.Post("/quiz", cfg.RewardHandler.Quiz)
			r.Post("/daily-login", cfg.RewardHandler.DailyLogin)
			r.Post("/prediction", cfg.RewardHandler.Prediction)
			r.Post("/weekly-streak", cfg.RewardHandler.WeeklyStreak)
			r.Post("/monthly-bonus", cfg.RewardHandler.MonthlyBonus)
			r.Post("/welcome", cfg.RewardHandler.Welcome)
		})

		// Exchange
		r.Post("/exchange", cfg.ExchangeHandler.Create)

		// Ledger-wide views
		r.Get("/supply", cfg.WalletHandler.GetSupply)
		r.Get("/leaderboard", cfg.WalletHandler.GetLeaderboard)
		r.Get("/security-events", cfg.AuditHandler.List)
	})

	return r
}
