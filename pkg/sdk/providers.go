package ordino

import "context"

// Embedder converts text to vector embeddings.
// Required for ingestion and retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token counts.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Generator produces an answer from a system prompt and a grounded
// user prompt. Required for questions not covered by the answer cache.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
