package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arama-cloud/arama/internal/config"
	"github.com/arama-cloud/arama/internal/db"
	dbRedis "github.com/arama-cloud/arama/internal/db/redis"
	"github.com/arama-cloud/arama/internal/domain"
	logpkg "github.com/arama-cloud/arama/internal/logger"
	"github.com/arama-cloud/arama/internal/metrics"
	collectionrepo "github.com/arama-cloud/arama/internal/repository/collection"
	documentrepo "github.com/arama-cloud/arama/internal/repository/document"
	"github.com/arama-cloud/arama/internal/repository/embcache"
	searchrepo "github.com/arama-cloud/arama/internal/repository/search"
	chiTransport "github.com/arama-cloud/arama/internal/transport/chi"
	openaiEmb "github.com/arama-cloud/arama/internal/transport/openai"
	embeddinguc "github.com/arama-cloud/arama/internal/usecase/embedding"
	healthuc "github.com/arama-cloud/arama/internal/usecase/health"
	ingestuc "github.com/arama-cloud/arama/internal/usecase/ingest"
	reconcileuc "github.com/arama-cloud/arama/internal/usecase/reconcile"
	searchuc "github.com/arama-cloud/arama/internal/usecase/search"
	"github.com/arama-cloud/arama/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting arama API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// The document and query chains share the base embedder but carry
	// different role prefixes.
	vecCfg := cfg.Embedding.ActiveVectorizer()
	base := buildBaseEmbedder(cfg, vecCfg, store, logger)

	docEmbedder := withRolePrefix(base, vecCfg.DocumentPrefix)
	queryEmbedder := withRolePrefix(base, vecCfg.QueryPrefix)
	logger.Info("Embedders created",
		zap.String("vectorizer", cfg.Embedding.Active),
		zap.String("kind", vecCfg.Kind),
		zap.String("model", vecCfg.Model),
		zap.Int("dimensions", base.Dimensions()),
	)

	// Repositories
	collRepo := collectionrepo.New(store).WithHNSW(collectionrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	docRepo := documentrepo.New(store, documentrepo.Limits{
		MaxTextLen:     cfg.Collection.MaxTextLen,
		MaxFilenameLen: cfg.Collection.MaxFilenameLen,
	})
	searchRepo := searchrepo.New(store)

	// Converge the collection onto the active embedder before serving.
	reconciler := reconcileuc.New(
		collRepo, docRepo, docEmbedder,
		cfg.Collection.Name, cfg.Collection.SeedFile, logger,
	)
	outcome, err := reconciler.Reconcile(ctx, base.Dimensions())
	if err != nil {
		logger.Fatal("Collection reconciliation failed", zap.Error(err))
	}
	logger.Info("Collection reconciled", zap.String("outcome", string(outcome)))

	// Use case services
	rerankOpts := searchuc.DefaultOptions(cfg.Search.Lexical)
	if cfg.Search.Threshold > 0 {
		rerankOpts.Threshold = cfg.Search.Threshold
	}
	if cfg.Search.FallbackTopN > 0 {
		rerankOpts.FallbackTopN = cfg.Search.FallbackTopN
	}
	topK := cfg.Search.TopK
	if topK <= 0 {
		topK = searchuc.DefaultTopK
		if vecCfg.Kind == "hashed" {
			topK = 5
		}
	}

	ingestSvc := ingestuc.New(docRepo, docEmbedder, cfg.Collection.Name, logger)
	searchSvc := searchuc.New(
		searchRepo, queryEmbedder, cfg.Collection.Name, rerankOpts, logger,
	).WithTopK(topK)
	healthSvc := healthuc.New(store, newVectorizerHealthChecker(base))

	// HTTP server
	server := chiTransport.NewServer(ingestSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildBaseEmbedder assembles the shared chain: provider -> Cached ->
// Instrumented. Role prefixes are layered per chain on top of this.
func buildBaseEmbedder(
	cfg config.Config,
	vecCfg config.VectorizerConfig,
	store db.Store,
	logger *zap.Logger,
) domain.Embedder {
	var embedder domain.Embedder
	provider := vecCfg.Provider

	switch vecCfg.Kind {
	case "hashed":
		provider = "hashed"
		embedder = embeddinguc.NewHashedEmbedder(vecCfg.Dimensions)
	default:
		provCfg := cfg.Embedding.Providers[vecCfg.Provider]
		dense := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     provCfg.APIKey,
			BaseURL:    provCfg.BaseURL,
			Model:      vecCfg.Model,
			Dimensions: vecCfg.Dimensions,
			Normalize:  vecCfg.Normalize,
			Provider:   vecCfg.Provider,
			Logger:     logger,
		})
		// Caching pays off only for remote providers; the hashed embedder is
		// cheaper than the round trip.
		embedder = embcache.New(dense, store, vecCfg.Model, metrics.EmbeddingCacheTotal, logger)
	}

	return embeddinguc.NewInstrumentedEmbedder(embedder, provider, vecCfg.Model, logger)
}

// withRolePrefix layers a role marker chain onto the shared embedder.
func withRolePrefix(inner domain.Embedder, prefix string) domain.Embedder {
	if prefix == "" {
		return inner
	}
	return domain.NewRolePrefixEmbedder(inner, prefix)
}

// vectorizerHealthChecker adapts domain.Embedder to health.VectorizerChecker.
type vectorizerHealthChecker struct {
	embedder domain.Embedder
}

func newVectorizerHealthChecker(embedder domain.Embedder) *vectorizerHealthChecker {
	return &vectorizerHealthChecker{embedder: embedder}
}

func (h *vectorizerHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("vectorizer health check: %w", err)
		}
	}
	return nil
}
