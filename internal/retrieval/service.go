// Package retrieval fuses vector searches over several phrasings of one
// question into a single ranked passage list.
package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/domain"
)

const (
	// maxVariants bounds the fan-out per question regardless of how many
	// variants the expander produced.
	maxVariants = 3

	// fingerprintLen is the leading-text length used to coalesce
	// near-duplicate passages surfaced by different variants.
	fingerprintLen = 100
)

type Service struct {
	embedder domain.Embedder
	searcher Searcher
	logger   *zap.Logger
}

func New(embedder domain.Embedder, searcher Searcher, logger *zap.Logger) *Service {
	return &Service{
		embedder: embedder,
		searcher: searcher,
		logger:   logger,
	}
}

// FusedSearch issues at most three variant searches sequentially and
// pools the results, keeping the first passage seen per content
// fingerprint. The pool is ordered by ascending distance and cut to
// topK. An empty pool triggers one fallback search with the expanded
// query; an empty fallback is a valid terminal outcome, not an error.
func (s *Service) FusedSearch(ctx context.Context, variants []string, expanded, jurisdiction string, topK int) ([]domain.Passage, error) {
	if len(variants) > maxVariants {
		variants = variants[:maxVariants]
	}

	seen := make(map[string]struct{})
	var fused []domain.Passage
	for _, variant := range variants {
		passages, err := s.searchOne(ctx, variant, jurisdiction, topK)
		if err != nil {
			return nil, err
		}
		for _, p := range passages {
			fp := fingerprint(p.Text)
			if _, ok := seen[fp]; ok {
				continue
			}
			seen[fp] = struct{}{}
			fused = append(fused, p)
		}
	}

	if len(fused) == 0 && expanded != "" {
		passages, err := s.searchOne(ctx, expanded, jurisdiction, topK)
		if err != nil {
			return nil, err
		}
		fused = passages
		s.logger.Debug("variant searches empty, used expanded fallback",
			zap.String("jurisdiction", jurisdiction),
			zap.Int("passages", len(fused)))
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Distance < fused[j].Distance
	})
	if len(fused) > topK {
		fused = fused[:topK]
	}
	return fused, nil
}

func (s *Service) searchOne(ctx context.Context, query, jurisdiction string, topK int) ([]domain.Passage, error) {
	res, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.searcher.Search(ctx, res.Embedding, jurisdiction, topK)
}

func fingerprint(text string) string {
	if len(text) > fingerprintLen {
		return text[:fingerprintLen]
	}
	return text
}
