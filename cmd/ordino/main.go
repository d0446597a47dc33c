package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/answercache"
	"github.com/parcelworks/ordino/internal/chunker"
	"github.com/parcelworks/ordino/internal/config"
	"github.com/parcelworks/ordino/internal/db"
	dbRedis "github.com/parcelworks/ordino/internal/db/redis"
	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/expander"
	"github.com/parcelworks/ordino/internal/formatter"
	"github.com/parcelworks/ordino/internal/ingest"
	logpkg "github.com/parcelworks/ordino/internal/logger"
	"github.com/parcelworks/ordino/internal/metrics"
	"github.com/parcelworks/ordino/internal/pipeline"
	answersrepo "github.com/parcelworks/ordino/internal/repository/answers"
	"github.com/parcelworks/ordino/internal/repository/embcache"
	passagerepo "github.com/parcelworks/ordino/internal/repository/passage"
	"github.com/parcelworks/ordino/internal/retrieval"
	"github.com/parcelworks/ordino/internal/tokenizer"
	chiTransport "github.com/parcelworks/ordino/internal/transport/chi"
	openaiProv "github.com/parcelworks/ordino/internal/transport/openai"
	healthuc "github.com/parcelworks/ordino/internal/usecase/health"
	"github.com/parcelworks/ordino/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting ordino API server",
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

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterProviderMetrics()
	metrics.RegisterPipelineMetrics()

	baseEmbedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		Dimensions: cfg.OpenAI.EmbeddingDimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	embedder := buildEmbedder(baseEmbedder, store, logger)
	generator := openaiProv.NewGenerator(&openaiProv.GeneratorConfig{
		APIKey:   cfg.OpenAI.APIKey,
		BaseURL:  cfg.OpenAI.BaseURL,
		Model:    cfg.OpenAI.ChatModel,
		Provider: "openai",
		Logger:   logger,
	})
	logger.Info("Providers created",
		zap.String("embedding_model", cfg.OpenAI.EmbeddingModel),
		zap.Int("dimensions", cfg.OpenAI.EmbeddingDimensions),
		zap.String("chat_model", cfg.OpenAI.ChatModel),
	)

	// Repositories
	passageRepo := passagerepo.New(store, cfg.OpenAI.EmbeddingDimensions)
	answerCache := answercache.New(ctx, answersrepo.New(store), logger)

	// Chunking
	tok, err := tokenizer.New(cfg.OpenAI.EmbeddingModel)
	if err != nil {
		logger.Fatal("Failed to create tokenizer", zap.Error(err))
	}

	// Services
	retriever := retrieval.New(embedder, passageRepo, logger)
	answerSvc := pipeline.New(
		answerCache, expander.New(), retriever, formatter.New(),
		generator, cfg.Retrieval.TopK, logger,
	)
	ingestSvc := ingest.New(chunker.New(tok), embedder, passageRepo, cfg.Chunking.MaxTokens, logger)
	healthSvc := healthuc.New(store, baseEmbedder)

	// HTTP transport
	server := chiTransport.NewServer(answerSvc, ingestSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: OpenAI -> Cached.
// Query variants repeat across requests, so cached vectors skip the provider.
func buildEmbedder(base domain.Embedder, store db.Store, logger *zap.Logger) domain.Embedder {
	if store == nil {
		return base
	}
	return embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
