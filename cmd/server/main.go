package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/travelblog/auth-service/internal/api"
	"github.com/travelblog/auth-service/internal/core/password"
	"github.com/travelblog/auth-service/internal/core/token"
	"github.com/travelblog/auth-service/internal/infrastructure/audit"
	"github.com/travelblog/auth-service/internal/infrastructure/config"
	"github.com/travelblog/auth-service/internal/infrastructure/db/postgres"
	redisdb "github.com/travelblog/auth-service/internal/infrastructure/db/redis"
	"github.com/travelblog/auth-service/pkg/logger"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.Postgres.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("postgres migration failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	trail := redisdb.NewAuditStore(rdb)
	recorder := audit.NewRecorder(0, trail, log)
	recorder.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:       db,
		Redis:    rdb,
		Codec:    token.NewCodec(cfg.JWTSecret),
		Hasher:   password.NewHasher(cfg.BcryptCost),
		TokenTTL: cfg.TokenTTL,
		Audit:    recorder,
		Trail:    trail,
		Log:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("auth service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
