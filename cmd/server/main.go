package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/sportiq/picoin/internal/adapter/http"
	"github.com/sportiq/picoin/internal/adapter/http/handler"
	"github.com/sportiq/picoin/internal/adapter/http/middleware"
	"github.com/sportiq/picoin/internal/adapter/idgen"
	"github.com/sportiq/picoin/internal/adapter/repository/badgerstore"
	redisRepo "github.com/sportiq/picoin/internal/adapter/repository/redis"
	"github.com/sportiq/picoin/internal/infrastructure/config"
	"github.com/sportiq/picoin/internal/infrastructure/cryptostore"
	"github.com/sportiq/picoin/internal/infrastructure/logger"
	"github.com/sportiq/picoin/internal/infrastructure/ratelimit"
	"github.com/sportiq/picoin/internal/infrastructure/redis"
	"github.com/sportiq/picoin/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Logger = appLogger

	ctx := context.Background()

	// Open the embedded database
	kv, err := badgerstore.Open(cfg.DataDir, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data store")
	}
	defer kv.Close()
	log.Info().Str("dir", cfg.DataDir).Msg("opened data store")

	if cfg.EncryptionKey == "" {
		log.Warn().Msg("ENCRYPTION_KEY is empty, state is encrypted with a derived default key")
	}
	store, err := cryptostore.New(kv, []byte(cfg.EncryptionKey), appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init encrypted store")
	}

	// Pick the transaction rate limiter backend
	var limiter usecase.RateLimiter
	var redisClient *goredis.Client
	switch cfg.RateLimitBackend {
	case "redis":
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		log.Info().Msg("connected to redis")
		limiter = redisRepo.NewRateLimiter(client, appLogger)
		redisClient = client
	default:
		window := ratelimit.NewWindow(usecase.RealClock{})
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				window.Cleanup()
			}
		}()
		limiter = window
	}

	idGen := idgen.NewULIDGenerator()
	clock := usecase.RealClock{}

	// Initialize use cases
	auditUC := usecase.NewAuditUseCase(store, idGen, clock)
	ledgerUC := usecase.NewLedgerUseCase(store, limiter, auditUC, idGen, clock)
	rewardUC := usecase.NewRewardUseCase(ledgerUC, store, clock)
	exchangeUC := usecase.NewExchangeUseCase(ledgerUC, store, auditUC, idGen, clock)

	// Initialize handlers
	walletHandler := handler.NewWalletHandler(ledgerUC)
	rewardHandler := handler.NewRewardHandler(rewardUC)
	exchangeHandler := handler.NewExchangeHandler(exchangeUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(kv, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:   walletHandler,
		RewardHandler:   rewardHandler,
		ExchangeHandler: exchangeHandler,
		AuditHandler:    auditHandler,
		HealthHandler:   healthHandler,
		Logger:          appLogger,
		RateLimiter:     middleware.NewRateLimiter(cfg.HTTPRateLimit, cfg.HTTPRateBurst),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
