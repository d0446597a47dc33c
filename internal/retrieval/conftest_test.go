package retrieval

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/domain"
)

// mockEmbedder implements domain.Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	texts   []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
}

// mockSearcher implements the consumer interface for tests.
type mockSearcher struct {
	searchFn func(ctx context.Context, vector []float32, jurisdiction string, topK int) ([]domain.Passage, error)
	calls    int
}

func (m *mockSearcher) Search(ctx context.Context, vector []float32, jurisdiction string, topK int) ([]domain.Passage, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, jurisdiction, topK)
	}
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *mockEmbedder, *mockSearcher) {
	t.Helper()
	me := &mockEmbedder{}
	ms := &mockSearcher{}
	return New(me, ms, zap.NewNop()), me, ms
}

func passage(text, section string, distance float64) domain.Passage {
	return domain.Passage{Text: text, Section: section, Distance: distance}
}
