// Command ingest loads an ordinance text file into the chunk index.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/chunker"
	"github.com/parcelworks/ordino/internal/config"
	dbRedis "github.com/parcelworks/ordino/internal/db/redis"
	"github.com/parcelworks/ordino/internal/ingest"
	logpkg "github.com/parcelworks/ordino/internal/logger"
	"github.com/parcelworks/ordino/internal/metrics"
	passagerepo "github.com/parcelworks/ordino/internal/repository/passage"
	"github.com/parcelworks/ordino/internal/tokenizer"
	openaiProv "github.com/parcelworks/ordino/internal/transport/openai"
)

func main() {
	var (
		file         = flag.String("file", "", "path to the ordinance text file")
		jurisdiction = flag.String("jurisdiction", "", "jurisdiction the document belongs to")
		timeout      = flag.Duration("timeout", 10*time.Minute, "overall ingestion timeout")
	)
	flag.Parse()

	if *file == "" || *jurisdiction == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -file ordinance.txt -jurisdiction loudoun")
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	text, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("Failed to read document", zap.String("file", *file), zap.Error(err))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.RegisterProviderMetrics()

	embedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		Dimensions: cfg.OpenAI.EmbeddingDimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	tok, err := tokenizer.New(cfg.OpenAI.EmbeddingModel)
	if err != nil {
		logger.Fatal("Failed to create tokenizer", zap.Error(err))
	}

	repo := passagerepo.New(store, cfg.OpenAI.EmbeddingDimensions)
	svc := ingest.New(chunker.New(tok), embedder, repo, cfg.Chunking.MaxTokens, logger)

	result, err := svc.IngestDocument(ctx, *jurisdiction, string(text))
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	fmt.Printf("ingested %s: %d chunks, %d tokens\n", *jurisdiction, result.Chunks, result.Tokens)
}
