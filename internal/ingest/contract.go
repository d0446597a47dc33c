package ingest

import (
	"context"

	"github.com/parcelworks/ordino/internal/domain"
)

// Chunker splits ordinance text into retrieval-sized chunks.
type Chunker interface {
	ChunkDocument(text string, maxTokens int) []domain.Chunk
	Merge(chunks []domain.Chunk) []domain.Chunk
}

// Repository stores embedded chunks behind a searchable index.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, jurisdiction string, chunks []domain.Chunk, vectors [][]float32) error
	Count(ctx context.Context, jurisdiction string) (int, error)
}
