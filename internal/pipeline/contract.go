package pipeline

import (
	"context"

	"github.com/parcelworks/ordino/internal/answercache"
	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/formatter"
)

// Cache is the two-tier answer cache consumed by the pipeline.
type Cache interface {
	Lookup(question string) (answercache.Entry, bool)
	Insert(ctx context.Context, question string, e answercache.Entry) error
}

// Expander produces ordinance-register rewrites of a user question.
type Expander interface {
	Expand(query string) string
	FocusedVariants(query string) []string
}

// Retriever resolves query variants to a fused, ranked passage list.
type Retriever interface {
	FusedSearch(ctx context.Context, variants []string, expanded, jurisdiction string, topK int) ([]domain.Passage, error)
}

// Formatter renders a raw model answer through the template registry.
type Formatter interface {
	Format(question, answer string, citations []domain.Citation) (string, formatter.TemplateType)
}
