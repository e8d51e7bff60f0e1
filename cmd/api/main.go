package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/squartrbnb/user-service/internal/api"
	"github.com/squartrbnb/user-service/internal/api/handler"
	"github.com/squartrbnb/user-service/internal/api/middleware"
	"github.com/squartrbnb/user-service/internal/core/service"
	"github.com/squartrbnb/user-service/internal/infrastructure/config"
	redisdb "github.com/squartrbnb/user-service/internal/infrastructure/db/redis"
	"github.com/squartrbnb/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title User Service API
// @version 1.0
// @description User account management: CRUD, uniqueness rules, role resolution and a structured error taxonomy.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "user-service",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer st.close()

	checks := map[string]handler.Check{st.name: st.check}

	var limiter middleware.Limiter
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		limiter = redisdb.NewWindowLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
		checks["redis"] = redisdb.Ping(rdb)
	}

	users := service.NewUserService(
		st.users,
		st.roles,
		service.NewBcryptHasher(cfg.BcryptCost),
		cfg.DefaultRole,
		log.With().Str("component", "user_service").Logger(),
	)
	if err := users.CheckDefaultRole(ctx); err != nil {
		log.Fatal().Err(err).Str("role", cfg.DefaultRole).Msg("default role check failed")
	}

	e := api.NewRouter(api.Dependencies{
		Users:       users,
		Limiter:     limiter,
		Checks:      checks,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("user service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
