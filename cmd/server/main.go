// Command server runs the travel planner HTTP API.
//
//	@title						Travel Planner API
//	@version					1.0
//	@description				Trips, accommodations and user accounts behind token and basic authentication.
//	@BasePath					/
//	@securityDefinitions.basic	BasicAuth
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/planifikues/travel-planner/internal/api"
	"github.com/planifikues/travel-planner/internal/api/handler"
	"github.com/planifikues/travel-planner/internal/core/service"
	mongodb "github.com/planifikues/travel-planner/internal/infrastructure/db/mongo"
	redisdb "github.com/planifikues/travel-planner/internal/infrastructure/db/redis"
	"github.com/planifikues/travel-planner/internal/infrastructure/queue"
	"github.com/planifikues/travel-planner/internal/infrastructure/security"
	"github.com/planifikues/travel-planner/internal/pkg/config"
	"github.com/planifikues/travel-planner/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "travel-planner",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	trips := mongodb.NewTripRepository(db)
	stays := mongodb.NewAccommodationRepository(db)
	activities := mongodb.NewActivityRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, trips, stays, activities, auditRepo); err != nil {
		return err
	}

	// --- Security ---
	hasher, err := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := service.NewAuditService(auditRepo, logger.For("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, logger.For("audit-dispatcher"))
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)

	authService, err := service.NewAuthService(users, hasher, tokens, logger.For("auth"),
		service.WithLoginLimiter(limiter),
		service.WithAuditRecorder(dispatcher),
	)
	if err != nil {
		return err
	}
	userService := service.NewUserService(users, hasher, logger.For("users"))
	tripService := service.NewTripService(trips, stays, activities, logger.For("trips"))

	if cfg.Admin.Enabled {
		if err := service.SeedAdmin(ctx, users, hasher, logger.For("seed"), cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
			return err
		}
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Users:    userService,
		Trips:    tripService,
		Audit:    auditService,
		Tokens:   tokens,
		Recorder: dispatcher,
		Ready: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		AllowedOrigin: cfg.Auth.CORSAllowedOrigin,
		BasicEnabled:  cfg.Auth.BasicEnabled,
		Logger:        logger.For("http"),
	})

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http: starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("http: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)

		stopWorkers()
		dispatcher.Wait()
		return err
	})

	return g.Wait()
}
