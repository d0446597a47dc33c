package ordino

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/answercache"
	"github.com/parcelworks/ordino/internal/chunker"
	"github.com/parcelworks/ordino/internal/db"
	dbRedis "github.com/parcelworks/ordino/internal/db/redis"
	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/expander"
	"github.com/parcelworks/ordino/internal/formatter"
	"github.com/parcelworks/ordino/internal/ingest"
	"github.com/parcelworks/ordino/internal/pipeline"
	answersrepo "github.com/parcelworks/ordino/internal/repository/answers"
	passagerepo "github.com/parcelworks/ordino/internal/repository/passage"
	"github.com/parcelworks/ordino/internal/retrieval"
	"github.com/parcelworks/ordino/internal/tokenizer"
	healthuc "github.com/parcelworks/ordino/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultVectorDimensions = 1536
	defaultTokenizerModel   = "text-embedding-3-small"
	defaultTopK             = 5
	defaultMaxChunkTokens   = 800
)

// Internal interfaces so tests can substitute the services.
type answerUseCase interface {
	AnswerQuestion(ctx context.Context, question, jurisdiction string) (domain.Answer, error)
}

type ingestUseCase interface {
	IngestDocument(ctx context.Context, jurisdiction, text string) (ingest.Result, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Citation points a reader at the ordinance section behind an answer.
type Citation struct {
	Section   string
	Relevance float64
}

// Answer is the result of one question against one jurisdiction.
type Answer struct {
	Question       string
	Answer         string
	Citations      []Citation
	Jurisdiction   string
	Cached         bool
	ChunksSearched int
}

// IngestStats summarizes one document ingestion.
type IngestStats struct {
	Chunks int
	Tokens int
}

// Client is the ordino SDK entry point.
type Client struct {
	store     db.Store
	answerSvc answerUseCase
	ingestSvc ingestUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates an ordino Client and connects to the database.
// The provided context is used for the initial readiness check and
// the answer cache warm-up.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: defaultVectorDimensions,
		tokenizerModel:   defaultTokenizerModel,
		topK:             defaultTopK,
		maxChunkTokens:   defaultMaxChunkTokens,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("ordino: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("ordino: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ordino: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(ctx, store, cfg, obs)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	passageRepo := passagerepo.New(store, cfg.vectorDimensions)
	cache := answercache.New(ctx, answersrepo.New(store), zap.NewNop())

	var domEmb domain.Embedder = noopEmbedder{}
	if cfg.embedder != nil {
		domEmb = &embedderAdapter{inner: cfg.embedder}
	}
	var domGen domain.Generator = noopGenerator{}
	if cfg.generator != nil {
		domGen = &generatorAdapter{inner: cfg.generator}
	}

	tok, err := tokenizer.New(cfg.tokenizerModel)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("ordino: create tokenizer: %w", err)
	}

	retriever := retrieval.New(domEmb, passageRepo, zap.NewNop())
	answerSvc := pipeline.New(
		cache, expander.New(), retriever, formatter.New(),
		domGen, cfg.topK, zap.NewNop(),
	)
	ingestSvc := ingest.New(chunker.New(tok), domEmb, passageRepo, cfg.maxChunkTokens, zap.NewNop())
	healthSvc := healthuc.New(store, nil)

	return &Client{
		store:     store,
		answerSvc: answerSvc,
		ingestSvc: ingestSvc,
		healthSvc: healthSvc,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Ask answers a zoning question for a jurisdiction.
func (c *Client) Ask(ctx context.Context, question, jurisdiction string) (_ Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err) }()

	a, err := c.answerSvc.AnswerQuestion(ctx, question, jurisdiction)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}

	citations := make([]Citation, len(a.Citations))
	for i, cit := range a.Citations {
		citations[i] = Citation{Section: cit.Section, Relevance: cit.Relevance}
	}
	return Answer{
		Question:       a.Question,
		Answer:         a.Answer,
		Citations:      citations,
		Jurisdiction:   a.Jurisdiction,
		Cached:         a.Cached,
		ChunksSearched: a.ChunksSearched,
	}, nil
}

// Ingest chunks, embeds and indexes an ordinance document.
func (c *Client) Ingest(ctx context.Context, jurisdiction, text string) (_ IngestStats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ingest", start, err) }()

	r, err := c.ingestSvc.IngestDocument(ctx, jurisdiction, text)
	if err != nil {
		return IngestStats{}, fmt.Errorf("ingest: %w", err)
	}
	return IngestStats{Chunks: r.Chunks, Tokens: r.Tokens}, nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// generatorAdapter wraps the public Generator to satisfy internal domain.Generator.
type generatorAdapter struct {
	inner Generator
}

func (a *generatorAdapter) Generate(ctx context.Context, system, prompt string) (string, error) {
	out, err := a.inner.Generate(ctx, system, prompt)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return out, nil
}

// noopEmbedder returns an error on Embed call (used when no embedder configured).
type noopEmbedder struct{}

func (noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, fmt.Errorf(
		"ordino: embedder not configured (use WithEmbedder): %w", domain.ErrEmbeddingProvider,
	)
}

// noopGenerator returns an error on Generate call (used when no generator configured).
type noopGenerator struct{}

func (noopGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf(
		"ordino: generator not configured (use WithGenerator): %w", domain.ErrGenerationProvider,
	)
}
