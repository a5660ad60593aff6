package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hermes-rag/hermes/internal/chunker"
	"github.com/hermes-rag/hermes/internal/config"
	dbRedis "github.com/hermes-rag/hermes/internal/db/redis"
	logpkg "github.com/hermes-rag/hermes/internal/logger"
	"github.com/hermes-rag/hermes/internal/metrics"
	documentrepo "github.com/hermes-rag/hermes/internal/repository/document"
	"github.com/hermes-rag/hermes/internal/repository/embcache"
	"github.com/hermes-rag/hermes/internal/repository/querycache"
	searchrepo "github.com/hermes-rag/hermes/internal/repository/search"
	mcpTransport "github.com/hermes-rag/hermes/internal/transport/mcp"
	openaiEmb "github.com/hermes-rag/hermes/internal/transport/openai"
	"github.com/hermes-rag/hermes/internal/transport/ops"
	"github.com/hermes-rag/hermes/internal/transport/tei"
	healthuc "github.com/hermes-rag/hermes/internal/usecase/health"
	ingestuc "github.com/hermes-rag/hermes/internal/usecase/ingest"
	searchuc "github.com/hermes-rag/hermes/internal/usecase/search"
	"github.com/hermes-rag/hermes/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting hermes",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("mcp_transport", cfg.Server.Transport),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
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

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	if err := documentrepo.EnsureIndex(ctx, store, documentrepo.IndexParams{
		VectorDim:   cfg.Embedding.Dimensions,
		HNSWM:       cfg.Database.HNSWM,
		HNSWEFConst: cfg.Database.HNSWEFConstruct,
	}); err != nil {
		logger.Fatal("Failed to create chunk index", zap.Error(err))
	}

	// Embedder chain: OpenAI-compatible provider wrapped in the Redis-backed cache.
	baseEmbedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	embedder := embcache.New(
		baseEmbedder,
		store,
		time.Duration(cfg.Embedding.CacheTTL)*time.Second,
		metrics.EmbeddingCacheTotal,
		logger,
	)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Warmup so the first query does not pay cold-start latency. Failure is
	// non-fatal; the first real call surfaces the error.
	if _, err := embedder.Embed(ctx, "warmup"); err != nil {
		logger.Warn("Embedding warmup failed", zap.Error(err))
	}

	// Pass nil interface (not typed nil pointer) when the reranker is not configured.
	var reranker *tei.Reranker
	var rerankerSvc searchuc.Reranker
	var rerankerCheck healthuc.ProviderChecker
	if cfg.Reranker.BaseURL != "" {
		reranker = tei.NewReranker(&tei.Config{
			BaseURL: cfg.Reranker.BaseURL,
			Model:   cfg.Reranker.Model,
			Timeout: time.Duration(cfg.Reranker.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		rerankerSvc = reranker
		rerankerCheck = reranker
		logger.Info("Reranker created", zap.String("base_url", cfg.Reranker.BaseURL))
	}

	var queryCache searchuc.Cache
	if cfg.Cache.Enabled {
		queryCache = querycache.New(
			store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.QueryCacheTotal,
			logger,
		)
	}

	docRepo := documentrepo.New(store)
	searchRepo := searchrepo.New(store)

	searchSvc := searchuc.New(searchRepo, embedder, rerankerSvc, queryCache, searchuc.Params{
		CandidateTopK: cfg.Retrieval.CandidateTopK,
		ResultTopK:    cfg.Retrieval.ResultTopK,
		VectorWeight:  cfg.Retrieval.VectorWeight,
		KeywordWeight: cfg.Retrieval.KeywordWeight,
		RRFK:          cfg.Retrieval.RRFK,
	})
	ingestSvc := ingestuc.New(docRepo, embedder,
		chunker.New(cfg.Chunking.Size, cfg.Chunking.Overlap, cfg.Chunking.Separators))
	healthSvc := healthuc.New(store, baseEmbedder, rerankerCheck)

	mcpServer := mcpTransport.New(searchSvc, ingestSvc, docRepo, configInfo(cfg), logger)

	// Ops endpoint (health + metrics) on its own server.
	var opsServer *http.Server
	if cfg.Ops.Port > 0 {
		opsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Ops.Port),
			Handler:      ops.NewRouter(healthSvc, logger),
			ReadTimeout:  time.Duration(cfg.Ops.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.Ops.WriteTimeoutSec) * time.Second,
		}
		go func() {
			logger.Info("Starting ops server", zap.String("addr", opsServer.Addr))
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Ops server error", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		switch cfg.Server.Transport {
		case "http":
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			logger.Info("Starting MCP server", zap.String("addr", addr))
			errCh <- mcpServer.ServeHTTP(addr)
		default:
			logger.Info("Starting MCP server on stdio")
			errCh <- mcpServer.ServeStdio()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("MCP server error", zap.Error(err))
		}
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Ops.ShutdownSec)*time.Second)
	defer cancel()

	if err := mcpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during MCP shutdown", zap.Error(err))
	}
	if opsServer != nil {
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during ops shutdown", zap.Error(err))
		}
	}

	logger.Info("Server stopped gracefully")
}

// configInfo builds the non-secret configuration summary exposed over MCP.
func configInfo(cfg config.Config) mcpTransport.ConfigInfo {
	return mcpTransport.ConfigInfo{
		EmbeddingModel:      cfg.Embedding.Model,
		EmbeddingDimensions: cfg.Embedding.Dimensions,
		RerankerModel:       cfg.Reranker.Model,
		ChunkSize:           cfg.Chunking.Size,
		ChunkOverlap:        cfg.Chunking.Overlap,
		CandidateTopK:       cfg.Retrieval.CandidateTopK,
		ResultTopK:          cfg.Retrieval.ResultTopK,
		VectorWeight:        cfg.Retrieval.VectorWeight,
		KeywordWeight:       cfg.Retrieval.KeywordWeight,
		RRFK:                cfg.Retrieval.RRFK,
		CacheEnabled:        cfg.Cache.Enabled,
		CacheTTLSec:         cfg.Cache.TTLSec,
	}
}
