package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"interstellar-trade/config"
	httpLayer "interstellar-trade/http"
	"interstellar-trade/repository"
	"interstellar-trade/service"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	catalog, err := repository.LoadBodyCatalog(cfg.BodyCatalogPath)
	if err != nil {
		logger.WithError(err).Fatal("Error loading body catalog")
	}
	logger.WithFields(logrus.Fields{
		"bodies":  catalog.Len(),
		"version": catalog.Version(),
	}).Info("Body catalog loaded")

	calculator, err := service.NewTradeCalculator(catalog, cfg.ShipSpeedRatio)
	if err != nil {
		logger.WithError(err).Fatal("Error creating trade calculator")
	}

	quoteRepo := repository.QuoteRepository(repository.NewQuoteRepositoryMemory())
	if cfg.QuoteDBPath != "" {
		db, err := repository.OpenSQLite(cfg.QuoteDBPath)
		if err != nil {
			logger.WithError(err).Fatal("Error opening quote database")
		}
		quoteRepo = repository.NewGormQuoteRepository(db)
		logger.WithField("path", cfg.QuoteDBPath).Info("Storing quotes in SQLite")
	}

	cache := repository.CacheRepository(repository.NewMemoryCache())
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.WithError(err).Warn("Redis unreachable, using in-memory cache")
		} else {
			cache = redisCache
			logger.WithField("addr", cfg.RedisAddr).Info("Using Redis answer cache")
		}
		cancel()
	}

	kb := service.NewKnowledgeBase(catalog.All())
	advisor := service.NewAdvisorService(service.AdvisorConfig{
		APIKey:   cfg.OpenAI.APIKey,
		APIURL:   cfg.OpenAI.APIURL,
		Model:    cfg.OpenAI.Model,
		Timeout:  cfg.OpenAI.Timeout,
		CacheTTL: cfg.CacheTTL,
	}, kb, cache, logger)
	if !advisor.Enabled() {
		logger.Warn("OPENAI_API_KEY not set, advisor answers come from the knowledge base only")
	}

	tradeService := service.NewTradeService(calculator, quoteRepo, advisor, logger)

	metrics := httpLayer.NewMetrics("interstellar_trade")
	rateLimiter := httpLayer.NewRateLimiter(cfg.HTTP.RateLimitPerMinute, cfg.HTTP.RateLimitBurst)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		TradeHandler:  httpLayer.NewTradeHandler(tradeService, metrics, logger),
		PlanetHandler: httpLayer.NewPlanetHandler(catalog, advisor, tradeService, logger),
		ChatHandler:   httpLayer.NewChatHandler(advisor, logger),
		RateLimiter:   rateLimiter,
		Metrics:       metrics,
		CORS:          httpLayer.CORSConfig{AllowedOrigin: cfg.HTTP.CORSOrigin},
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":             cfg.Addr(),
			"ship_speed_ratio": cfg.ShipSpeedRatio,
		}).Info("🚀 Interstellar trade API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.WithError(err).Error("Error starting server")
		return
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Error during server shutdown")
	}

	logger.Info("Server exited")
}
