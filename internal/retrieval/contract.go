package retrieval

import (
	"context"

	"github.com/parcelworks/ordino/internal/domain"
)

// Searcher resolves a query vector to the nearest indexed passages for
// one jurisdiction.
type Searcher interface {
	Search(ctx context.Context, vector []float32, jurisdiction string, topK int) ([]domain.Passage, error)
}
