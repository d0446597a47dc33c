// Package passage persists embedded ordinance chunks as hashes and
// serves KNN lookups over them.
package passage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/parcelworks/ordino/internal/db"
	"github.com/parcelworks/ordino/internal/domain"
)

const (
	keyPrefix = domain.KeyPrefix + "chunks:"
	indexName = keyPrefix + "idx"

	// HNSW build parameters for the chunk index.
	hnswM           = 16
	hnswEFConstruct = 200
)

// store is the consumer interface for passage storage (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements retrieval.Searcher and the ingest repository.
type Repo struct {
	store     store
	vectorDim int
}

// New creates a passage repository. vectorDim must match the embedding
// model output size.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// EnsureIndex creates the chunk index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", indexName, err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     indexName,
		Prefixes: []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: "jurisdiction", Type: db.IndexFieldTag},
			{Name: "category", Type: db.IndexFieldTag},
			{Name: "tokens", Type: db.IndexFieldNumeric},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           hnswM,
				VectorEFConstruct: hnswEFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	return nil
}

// Upsert writes one hash per chunk in a single pipelined call. Chunks
// and vectors are parallel slices.
func (r *Repo) Upsert(ctx context.Context, jurisdiction string, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	items := make([]db.HashSetItem, 0, len(chunks))
	for i, chunk := range chunks {
		items = append(items, db.HashSetItem{
			Key: chunkKey(jurisdiction, uuid.NewString()),
			Fields: map[string]string{
				"text":         chunk.Text,
				"section":      sectionLabel(chunk),
				"article":      chunk.Article,
				"category":     chunk.Category,
				"tokens":       strconv.Itoa(chunk.Tokens),
				"has_tables":   strconv.FormatBool(chunk.HasTables),
				"has_lists":    strconv.FormatBool(chunk.HasLists),
				"jurisdiction": jurisdiction,
				"vector":       vectorBytes(vectors[i]),
			},
		})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d chunks: %w", len(items), err)
	}
	return nil
}

// Search implements retrieval.Searcher. A missing index reads as an
// empty corpus, not a failure. __vector_score must be in the RETURN
// list or FT.SEARCH omits it and every distance reads as zero.
func (r *Repo) Search(ctx context.Context, vector []float32, jurisdiction string, topK int) ([]domain.Passage, error) {
	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{"text", "section", "article", "category", "__vector_score"},
	}
	if jurisdiction != "" {
		q.TagFilters = map[string]string{"jurisdiction": jurisdiction}
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("search knn: %w: %w", err, domain.ErrIndexUnavailable)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	passages := make([]domain.Passage, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		passages = append(passages, domain.Passage{
			Text:     entry.Fields["text"],
			Section:  entry.Fields["section"],
			Article:  entry.Fields["article"],
			Category: entry.Fields["category"],
			Distance: entry.Distance,
		})
	}
	return passages, nil
}

// Count reports how many chunks are indexed for one jurisdiction, or in
// total when jurisdiction is empty.
func (r *Repo) Count(ctx context.Context, jurisdiction string) (int, error) {
	query := "*"
	if jurisdiction != "" {
		query = fmt.Sprintf("@jurisdiction:{%s}", jurisdiction)
	}
	n, err := r.store.SearchCount(ctx, indexName, query)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("count chunks: %w: %w", err, domain.ErrIndexUnavailable)
	}
	return n, nil
}

// sectionLabel is the citable section identifier: the bare number
// ("5-603") when the header parsed, otherwise the full header line.
// Citations and the "Section X" rendering in answers build on it.
func sectionLabel(chunk domain.Chunk) string {
	if chunk.SectionNumber != "" {
		return chunk.SectionNumber
	}
	return chunk.Section
}

func chunkKey(jurisdiction, id string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, jurisdiction, id)
}

// vectorBytes encodes a float32 slice as the little-endian blob the
// vector field stores.
func vectorBytes(vec []float32) string {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return string(buf)
}
