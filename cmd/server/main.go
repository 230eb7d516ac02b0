// Command server starts the ATS resume scorer HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/embedding"
	httpserver "github.com/fairyhunter13/ats-resume-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/ats-resume-scorer/internal/app"
	"github.com/fairyhunter13/ats-resume-scorer/internal/catalog"
	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/observability"
	"github.com/fairyhunter13/ats-resume-scorer/internal/scoring"
)

func main() {
	// Best effort; production configs come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, embeddings, and scoring instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewResumeRepo(pool)

	// Cleanup service for data retention
	if cfg.DataRetentionDays > 0 {
		cleanupSvc := postgres.NewCleanupService(pool, cfg.DataRetentionDays)
		go cleanupSvc.RunPeriodic(ctx, cfg.CleanupInterval)
		slog.Info("cleanup service started", slog.Int("retention_days", cfg.DataRetentionDays), slog.Duration("interval", cfg.CleanupInterval))
	}

	// Optional Redis, shared embedding cache across replicas
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
	}

	// Similarity provider: OpenAI-compatible embeddings when a key is
	// configured, otherwise the offline lexical fallback.
	var embedClient domain.EmbeddingClient
	if cfg.EmbeddingsEnabled() {
		embedClient = embedding.NewClient(cfg)
		if rdb != nil {
			embedClient = embedding.NewRedisCache(embedClient, rdb, cfg.EmbeddingsModel, cfg.EmbedCacheTTL)
		} else {
			embedClient = embedding.NewMemCache(embedClient, cfg.EmbedCacheSize)
		}
		slog.Info("embeddings provider initialized", slog.String("model", cfg.EmbeddingsModel))
	} else {
		embedClient = embedding.NewLexicalClient()
		slog.Warn("no embeddings api key configured, using offline lexical similarity")
	}
	sim := embedding.NewProvider(embedClient)

	// Skill catalog
	cat := catalog.Load(cfg.SkillsCSVPath, cfg.AliasesCSVPath)
	slog.Info("skill catalog loaded", slog.Int("skills", cat.Len()))

	engine := scoring.NewEngine(cat, sim)

	// Readiness checks
	dbCheck := app.DBReadinessCheck(pool)
	redisCheck := app.RedisReadinessCheck(rdb)

	// HTTP server
	srv := httpserver.NewServer(cfg, engine, repo, dbCheck, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
