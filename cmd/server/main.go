package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/devfolio/portfolio-system/internal/api"
	"github.com/devfolio/portfolio-system/internal/api/handler"
	"github.com/devfolio/portfolio-system/internal/core/ports"
	"github.com/devfolio/portfolio-system/internal/core/service"
	"github.com/devfolio/portfolio-system/internal/infrastructure/ai"
	"github.com/devfolio/portfolio-system/internal/infrastructure/db/memory"
	"github.com/devfolio/portfolio-system/internal/infrastructure/db/mongo"
	"github.com/devfolio/portfolio-system/internal/infrastructure/db/redis"
	"github.com/devfolio/portfolio-system/internal/pkg/config"
	"github.com/devfolio/portfolio-system/pkg/logger"
)

func main() {
	_ = godotenv.Load() // best-effort; env vars win

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo      ports.UserRepository
		portfolioRepo ports.PortfolioRepository
		refreshStore  ports.RefreshTokenStore
		db            *gomongo.Database
		rdb           *goredis.Client
	)

	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("running on the in-memory storage backend; data is lost on restart")
		userRepo = memory.NewUserRepository()
		portfolioRepo = memory.NewPortfolioRepository()
		refreshStore = memory.NewRefreshTokenStore()

	default:
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("error disconnecting mongodb")
			}
		}()
		db = database

		users := mongo.NewUserRepository(db)
		portfolios := mongo.NewPortfolioRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create user indexes")
		}
		if err := portfolios.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create portfolio indexes")
		}
		userRepo = users
		portfolioRepo = portfolios

		redisClient, err := redis.Connect(ctx, redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = redisClient.Close() }()
		rdb = redisClient
		refreshStore = redis.NewRefreshTokenStore(rdb)
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, refreshStore)
	authService := service.NewAuthService(userRepo, tokens, log)
	portfolioService := service.NewPortfolioService(portfolioRepo, ai.NewStaticEnhancer(), log)

	e := api.NewRouter(api.RouterDeps{
		Auth: handler.NewAuthHandler(authService, handler.CookieSettings{
			Domain: cfg.Cookie.Domain,
			Secure: cfg.Cookie.Secure,
			MaxAge: cfg.JWT.RefreshTTL,
		}, log),
		Portfolios:  handler.NewPortfolioHandler(portfolioService),
		Health:      handler.NewHealthHandler(),
		Readiness:   handler.NewReadinessHandler(db, rdb),
		Tokens:      tokens,
		FrontendURL: cfg.CORS.FrontendURL,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
