// Package ingest turns one ordinance document into indexed, embedded
// chunks for a jurisdiction.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/domain"
)

const defaultMaxTokens = 800

// Result summarizes one ingestion run.
type Result struct {
	Chunks int `json:"chunks"`
	Tokens int `json:"tokens"`
}

// Stats reports the indexed corpus size for one jurisdiction.
type Stats struct {
	Chunks int `json:"chunks"`
}

type Service struct {
	chunker   Chunker
	embedder  domain.Embedder
	repo      Repository
	logger    *zap.Logger
	maxTokens int
}

func New(chunker Chunker, embedder domain.Embedder, repo Repository, maxTokens int, logger *zap.Logger) *Service {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Service{
		chunker:   chunker,
		embedder:  embedder,
		repo:      repo,
		logger:    logger,
		maxTokens: maxTokens,
	}
}

// IngestDocument chunks, merges, embeds and indexes one document.
// Embedding runs sequentially per chunk; a failed embedding fails the
// whole run without partial rollback.
func (s *Service) IngestDocument(ctx context.Context, jurisdiction, text string) (Result, error) {
	chunks := s.chunker.Merge(s.chunker.ChunkDocument(text, s.maxTokens))

	if err := s.repo.EnsureIndex(ctx); err != nil {
		return Result{}, fmt.Errorf("ensure index: %w", err)
	}

	vectors := make([][]float32, 0, len(chunks))
	tokens := 0
	for i, chunk := range chunks {
		res, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			return Result{}, fmt.Errorf("embed chunk %d/%d: %w", i+1, len(chunks), err)
		}
		vectors = append(vectors, res.Embedding)
		tokens += chunk.Tokens
	}

	if err := s.repo.Upsert(ctx, jurisdiction, chunks, vectors); err != nil {
		return Result{}, fmt.Errorf("index chunks: %w", err)
	}

	s.logger.Info("document ingested",
		zap.String("jurisdiction", jurisdiction),
		zap.Int("chunks", len(chunks)),
		zap.Int("tokens", tokens))

	return Result{Chunks: len(chunks), Tokens: tokens}, nil
}

// Stats counts the indexed chunks for a jurisdiction. A jurisdiction
// with no chunks has never been ingested and maps to
// domain.ErrJurisdictionNotFound.
func (s *Service) Stats(ctx context.Context, jurisdiction string) (Stats, error) {
	n, err := s.repo.Count(ctx, jurisdiction)
	if err != nil {
		return Stats{}, fmt.Errorf("count chunks: %w", err)
	}
	if n == 0 {
		return Stats{}, fmt.Errorf("jurisdiction %q: %w", jurisdiction, domain.ErrJurisdictionNotFound)
	}
	return Stats{Chunks: n}, nil
}
