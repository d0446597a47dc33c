// Package pipeline orchestrates one question/answer round trip: cache
// lookup, query expansion, fused retrieval, grounded generation and
// template formatting.
package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/answercache"
	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/metrics"
)

const defaultTopK = 5

var sectionLabelRegex = regexp.MustCompile(`\d+-\d+`)

type Service struct {
	cache     Cache
	expander  Expander
	retriever Retriever
	formatter Formatter
	generator domain.Generator
	logger    *zap.Logger
	topK      int
}

func New(cache Cache, expander Expander, retriever Retriever, formatter Formatter, generator domain.Generator, topK int, logger *zap.Logger) *Service {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Service{
		cache:     cache,
		expander:  expander,
		retriever: retriever,
		formatter: formatter,
		generator: generator,
		logger:    logger,
		topK:      topK,
	}
}

// AnswerQuestion runs the full pipeline for one question against one
// jurisdiction. An empty index is a normal outcome with a fixed answer;
// a failed external call fails the whole invocation.
func (s *Service) AnswerQuestion(ctx context.Context, question, jurisdiction string) (domain.Answer, error) {
	if entry, ok := s.cache.Lookup(question); ok {
		s.logger.Debug("answer cache hit", zap.String("jurisdiction", jurisdiction))
		metrics.AnswerCacheTotal.WithLabelValues("hit").Inc()
		metrics.AnswersTotal.WithLabelValues("cached").Inc()
		return domain.Answer{
			Question:     question,
			Answer:       entry.Answer,
			Citations:    citationsFromReference(entry.Fields["reference"]),
			Jurisdiction: jurisdiction,
			Cached:       true,
		}, nil
	}

	metrics.AnswerCacheTotal.WithLabelValues("miss").Inc()

	variants := s.expander.FocusedVariants(question)
	expanded := s.expander.Expand(question)
	passages, err := s.retriever.FusedSearch(ctx, variants, expanded, jurisdiction, s.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve passages: %w", err)
	}

	if len(passages) == 0 {
		metrics.AnswersTotal.WithLabelValues("no_knowledge").Inc()
		return domain.Answer{
			Question:     question,
			Answer:       fmt.Sprintf("I don't have any zoning information for %s yet. Load its ordinance first.", jurisdiction),
			Citations:    []domain.Citation{},
			Jurisdiction: jurisdiction,
		}, nil
	}

	raw, err := s.generator.Generate(ctx, systemPrompt, buildPrompt(question, passages))
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	citations := domain.CitationsFrom(passages)
	formatted, kind := s.formatter.Format(question, raw, citations)

	if err := s.cache.Insert(ctx, question, answercache.Entry{
		Answer:       formatted,
		TemplateType: string(kind),
	}); err != nil {
		// Persistence trouble must not fail an already-computed answer.
		s.logger.Warn("answer cache insert failed", zap.Error(err))
	}

	metrics.AnswersTotal.WithLabelValues("generated").Inc()
	return domain.Answer{
		Question:       question,
		Answer:         formatted,
		Citations:      citations,
		Jurisdiction:   jurisdiction,
		ChunksSearched: len(passages),
	}, nil
}

// citationsFromReference recovers section labels from a cached
// reference string such as "Section 5-603". Curated answers carry full
// confidence.
func citationsFromReference(reference string) []domain.Citation {
	labels := sectionLabelRegex.FindAllString(reference, domain.MaxCitations)
	citations := make([]domain.Citation, 0, len(labels))
	for _, label := range labels {
		citations = append(citations, domain.Citation{Section: label, Relevance: 1.0})
	}
	return citations
}
