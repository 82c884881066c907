package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/config"
	dbPostgres "github.com/kailas-cloud/plagcheck/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/plagcheck/internal/db/redis"
	"github.com/kailas-cloud/plagcheck/internal/domain"
	logpkg "github.com/kailas-cloud/plagcheck/internal/logger"
	"github.com/kailas-cloud/plagcheck/internal/metrics"
	documentrepo "github.com/kailas-cloud/plagcheck/internal/repository/document"
	"github.com/kailas-cloud/plagcheck/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/plagcheck/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/plagcheck/internal/transport/openai"
	checkuc "github.com/kailas-cloud/plagcheck/internal/usecase/check"
	documentuc "github.com/kailas-cloud/plagcheck/internal/usecase/document"
	embeddinguc "github.com/kailas-cloud/plagcheck/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/plagcheck/internal/usecase/health"
	similarityuc "github.com/kailas-cloud/plagcheck/internal/usecase/similarity"
	"github.com/kailas-cloud/plagcheck/internal/usecase/summarize"
	"github.com/kailas-cloud/plagcheck/internal/version"
)

// documentStore is what the composition root needs from a storage backend.
type documentStore interface {
	documentuc.Repository
	healthuc.StoragePinger
}

// storage bundles the selected backend with its cleanup.
type storage struct {
	docs  documentStore
	cache *dbRedis.Store // nil unless redis/valkey
	close func()
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(logpkg.Options{
		Env:     env,
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: chiTransport.ServiceName,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	build := version.Get()
	logger.Info("Starting plagcheck API server",
		zap.String("build", build.String()),
		zap.String("go_version", build.GoVersion),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	ctx := context.Background()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.close()

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterPlagiarismMetrics()
	metrics.RegisterHTTPMetrics()

	embedder := buildEmbedder(cfg, store.cache, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cache", store.cache != nil),
	)

	docSvc := documentuc.New(store.docs, embedder)
	if err := docSvc.SyncMetrics(ctx); err != nil {
		logger.Warn("Failed to sync document gauge", zap.Error(err))
	}

	summarizer := summarize.New(summarize.Config{
		MinTextLength:    cfg.Summarizer.MinTextLength,
		DefaultMinLength: cfg.Summarizer.DefaultMinLength,
		DefaultMaxLength: cfg.Summarizer.DefaultMaxLength,
		PositionBonus:    cfg.Summarizer.PositionBonus,
	})
	minLen, maxLen := summarizer.DefaultBounds()

	server := chiTransport.NewServer(chiTransport.Services{
		Similarity: similarityuc.New(embedder, cfg.Similarity.Threshold),
		Documents:  docSvc,
		Checker:    checkuc.New(docSvc, cfg.Similarity.Threshold),
		Summarizer: summarizer,
		Health:     healthuc.New(store.docs, newEmbeddingHealthChecker(embedder), store.docs),
	}, chiTransport.Info{
		Storage: cfg.Database.Driver,
		Embedding: chiTransport.EmbeddingInfo{
			Provider:   cfg.Embedding.Provider,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		},
		Threshold: cfg.Similarity.Threshold,
		Summarizer: chiTransport.SummarizerInfo{
			MinTextLength:    summarizer.MinTextLength(),
			DefaultMinLength: minLen,
			DefaultMaxLength: maxLen,
		},
		MaxUploadBytes: cfg.Documents.MaxUploadBytes,
	}, logger)

	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStorage creates the document backend selected by database.driver.
func openStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (*storage, error) {
	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second

	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Info("Using in-memory document store")
		return &storage{docs: documentrepo.NewMemory(), close: func() {}}, nil

	case config.DriverRedis, config.DriverValkey:
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Database.Addrs,
			Username:   cfg.Database.Username,
			Password:   cfg.Database.Password,
			DB:         cfg.Database.DB,
			Standalone: cfg.Database.Standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Database.Driver, err)
		}
		if err := kv.WaitForReady(ctx, readiness); err != nil {
			kv.Close()
			return nil, fmt.Errorf("%s not ready: %w", cfg.Database.Driver, err)
		}
		logger.Info("Connected to database",
			zap.Strings("addrs", cfg.Database.Addrs),
			zap.Bool("standalone", cfg.Database.Standalone),
		)

		st := &storage{
			docs:  &redisDocuments{Repo: documentrepo.New(kv, cfg.Database.KeyPrefix), pinger: kv},
			close: kv.Close,
		}
		if cfg.CacheEnabled() {
			st.cache = kv
		}
		return st, nil

	case config.DriverPostgres:
		conn, err := dbPostgres.Open(dbPostgres.Config{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: cfg.Database.MaxOpenConns,
		})
		if err != nil {
			return nil, err
		}
		if err := dbPostgres.WaitForReady(ctx, conn, readiness); err != nil {
			closeDB(conn, logger)
			return nil, fmt.Errorf("postgres not ready: %w", err)
		}
		if err := dbPostgres.Migrate(conn); err != nil {
			closeDB(conn, logger)
			return nil, err
		}
		logger.Info("Connected to database, migrations applied")
		return &storage{
			docs:  documentrepo.NewPostgres(conn),
			close: func() { closeDB(conn, logger) },
		}, nil
	}

	return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

func closeDB(conn *sql.DB, logger *zap.Logger) {
	if err := conn.Close(); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}

// redisDocuments adds the store ping to the redis document repository.
type redisDocuments struct {
	*documentrepo.Repo
	pinger healthuc.StoragePinger
}

func (r *redisDocuments) Ping(ctx context.Context) error { return r.pinger.Ping(ctx) }

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: provider -> cached -> instrumented.
func buildEmbedder(cfg config.Config, cache *dbRedis.Store, logger *zap.Logger) domain.Embedder {
	ec := cfg.Embedding

	var base domain.Embedder
	switch ec.Provider {
	case config.ProviderOpenAI:
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     ec.APIKey,
			BaseURL:    ec.BaseURL,
			Model:      ec.Model,
			Dimensions: ec.Dimensions,
			Provider:   ec.Provider,
			Timeout:    time.Duration(ec.TimeoutSec) * time.Second,
			Logger:     logger,
		})
	default:
		base = embeddinguc.NewHashingEmbedder(ec.Dimensions)
	}

	embedder := base
	if cache != nil {
		embedder = embcache.New(base, cache, ec.Model, metrics.EmbeddingCacheTotal, logger).
			WithKeyPrefix(cfg.Database.KeyPrefix).
			WithVectorSpace(ec.Provider, ec.Dimensions)
	}

	return embeddinguc.NewInstrumentedEmbedder(embedder, ec.Provider, ec.Model, ec.Dimensions, logger)
}
