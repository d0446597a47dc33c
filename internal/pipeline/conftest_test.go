package pipeline

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/answercache"
	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/expander"
	"github.com/parcelworks/ordino/internal/formatter"
)

// mockCache implements the consumer cache interface for tests.
type mockCache struct {
	lookupFn func(question string) (answercache.Entry, bool)
	insertFn func(ctx context.Context, question string, e answercache.Entry) error
	inserted []answercache.Entry
}

func (m *mockCache) Lookup(question string) (answercache.Entry, bool) {
	if m.lookupFn != nil {
		return m.lookupFn(question)
	}
	return answercache.Entry{}, false
}

func (m *mockCache) Insert(ctx context.Context, question string, e answercache.Entry) error {
	m.inserted = append(m.inserted, e)
	if m.insertFn != nil {
		return m.insertFn(ctx, question, e)
	}
	return nil
}

// mockRetriever implements Retriever for tests.
type mockRetriever struct {
	searchFn func(ctx context.Context, variants []string, expanded, jurisdiction string, topK int) ([]domain.Passage, error)
	calls    int
}

func (m *mockRetriever) FusedSearch(ctx context.Context, variants []string, expanded, jurisdiction string, topK int) ([]domain.Passage, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, variants, expanded, jurisdiction, topK)
	}
	return nil, nil
}

// mockGenerator implements domain.Generator for tests.
type mockGenerator struct {
	generateFn func(ctx context.Context, system, prompt string) (string, error)
	calls      int
	lastPrompt string
}

func (m *mockGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.generateFn != nil {
		return m.generateFn(ctx, system, prompt)
	}
	return "", nil
}

// newTestService wires mocks for the external collaborators and real
// implementations for the pure in-process components.
func newTestService(t *testing.T) (*Service, *mockCache, *mockRetriever, *mockGenerator) {
	t.Helper()
	mc := &mockCache{}
	mr := &mockRetriever{}
	mg := &mockGenerator{}
	svc := New(mc, expander.New(), mr, formatter.New(), mg, 5, zap.NewNop())
	return svc, mc, mr, mg
}
