// @title        Quoting System API
// @version      1.0
// @description  Project, staffing and sustain cost estimates with rate tables, admin review and board sync.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/cotizador/quoting-system/internal/api"
	"github.com/cotizador/quoting-system/internal/api/metrics"
	"github.com/cotizador/quoting-system/internal/core/ports"
	"github.com/cotizador/quoting-system/internal/infrastructure/board/monday"
	"github.com/cotizador/quoting-system/internal/infrastructure/config"
	mongostore "github.com/cotizador/quoting-system/internal/infrastructure/db/mongo"
	"github.com/cotizador/quoting-system/internal/infrastructure/db/postgres"
	redisstore "github.com/cotizador/quoting-system/internal/infrastructure/db/redis"
	"github.com/cotizador/quoting-system/internal/infrastructure/identity/supabase"
	"github.com/cotizador/quoting-system/internal/infrastructure/queue"
	"github.com/cotizador/quoting-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		File:   cfg.LogFile,
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting quoting system")

	// ── Stores ───────────────────────────────────────────────────────────
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.URL}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn().Err(err).Msg("postgres close failed")
		}
	}()

	var mongoDB *mongodriver.Database
	if audit := connectMongo(ctx, cfg, log); audit != nil {
		mongoDB = audit.DB
		defer func() {
			if err := audit.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}()
	}

	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	// ── External services ────────────────────────────────────────────────
	provider := supabase.NewClient(supabase.Config{
		URL:       cfg.Supabase.URL,
		AnonKey:   cfg.Supabase.AnonKey,
		JWTSecret: cfg.Supabase.JWTSecret,
	})

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	var (
		board      ports.BoardSyncQueue
		dispatcher *queue.Dispatcher
	)
	if cfg.BoardSyncEnabled() {
		dispatcher = queue.NewDispatcher(cfg.Monday.Workers, monday.NewClient(monday.Config{
			APIURL:       cfg.Monday.APIURL,
			Token:        cfg.Monday.Token,
			BoardID:      cfg.Monday.BoardID,
			StatusColumn: cfg.Monday.StatusColumn,
		}), log)
		dispatcher.OnResult = metrics.ObserveBoardSync
		dispatcher.Start(workerCtx)
		board = dispatcher
	} else {
		log.Info().Msg("MONDAY_API_TOKEN not set, board sync disabled")
	}

	// ── HTTP ─────────────────────────────────────────────────────────────
	e := api.NewRouter(api.Dependencies{
		DB:            db,
		Mongo:         mongoDB,
		Redis:         rdb,
		Provider:      provider,
		Board:         board,
		DefaultRole:   cfg.DefaultRole,
		WebhookSecret: cfg.WebhookSecret,
		SecureCookies: cfg.IsProduction(),
		Logger:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	cancelWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
}

// connectMongo opens the audit store. It is optional: on failure the audit
// trail is disabled and nil is returned.
func connectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) *mongostore.Store {
	store, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Warn().Err(err).Msg("mongo unavailable, quote audit trail disabled")
		return nil
	}
	if err := mongostore.NewEventRepository(store.DB).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create audit indexes")
	}
	return store
}

// connectRedis opens the webhook delivery store. On failure idempotency
// keys are ignored and nil is returned.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *redis.Client {
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, webhook dedup disabled")
		return nil
	}
	return rdb
}
