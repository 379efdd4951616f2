// Command mockapi runs a local stand-in for the remote profile service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard-client/config"
	"dashboard-client/internal/delivery/http/middleware"
	v1 "dashboard-client/internal/delivery/http/v1"
	"dashboard-client/internal/infrastructure/cache"
	memoryrepo "dashboard-client/internal/repository/memory"
	"dashboard-client/internal/usecase"
	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const serviceName = "mockapi"

var version = "dev"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.Env, cfg.LogLevel)
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn().Msg("JWT_SECRET not set, signing tokens with the default secret")
	}

	// Photos live as long as the process
	photoCache := cache.NewMemoryCache(0, 0)
	accountRepo := memoryrepo.NewAccountRepository()
	signer := utils.NewTokenSigner(cfg.JWTSecret, cfg.AccessTokenExpiry)

	authUC := usecase.NewAuthUsecase(accountRepo, photoCache, signer, cfg.MaxImageSize)
	if _, err := authUC.Seed(context.Background(), cfg.SeedUserID, cfg.SeedEmail, cfg.SeedPassword, cfg.SeedName); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed account")
	}

	// Per address on every route, per account on the token routes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.MockAPIRatePerS),
		cfg.MockAPIBurst,
		time.Minute,   // sweep period
		3*time.Minute, // idle TTL
	)
	accountLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.AccountRatePerS),
		cfg.AccountBurst,
		time.Minute,
		3*time.Minute,
	)

	mux := v1.NewRouter(authUC, cfg.MaxImageSize, accountLimiter)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.MockAPIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.MockAPIPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()
	accountLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
