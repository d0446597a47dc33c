// Package answercache is the two-tier answer cache: a fixed curated set
// with fuzzy lookup, and a dynamic set persisted to durable storage.
package answercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// minSubstantiveLen is the formatted-answer length an entry must exceed
// to be admitted into the dynamic cache.
const minSubstantiveLen = 100

// Entry is one cached answer. Curated entries carry structured Fields for
// re-rendering; dynamic entries carry only the formatted answer text.
type Entry struct {
	Answer       string            `json:"answer"`
	Fields       map[string]string `json:"fields,omitempty"`
	TemplateType string            `json:"template_type"`
}

// Store persists the dynamic entry set as a single blob.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// Cache is the two-tier answer cache. Reads are lock-free on the curated
// tier; the dynamic tier is guarded by a mutex so concurrent inserts
// serialize instead of racing the persisted blob.
type Cache struct {
	curated     map[string]Entry
	curatedKeys []string // deterministic fuzzy scan order

	mu      sync.RWMutex
	dynamic map[string]Entry

	store  Store
	logger *zap.Logger
}

// New creates a Cache seeded with the curated entries. The dynamic tier
// is loaded from store; an unreadable store is treated as an empty cache.
func New(ctx context.Context, store Store, logger *zap.Logger) *Cache {
	c := &Cache{
		curated:     curatedEntries,
		curatedKeys: curatedKeyOrder(),
		dynamic:     make(map[string]Entry),
		store:       store,
		logger:      logger,
	}

	if store == nil {
		return c
	}

	blob, err := store.Load(ctx)
	if err != nil {
		logger.Warn("dynamic answer cache unreadable, starting empty", zap.Error(err))
		return c
	}
	if len(blob) == 0 {
		return c
	}
	if err := json.Unmarshal(blob, &c.dynamic); err != nil {
		logger.Warn("dynamic answer cache corrupt, starting empty", zap.Error(err))
		c.dynamic = make(map[string]Entry)
	}
	return c
}

// Lookup resolves a question against the cache: exact curated match,
// then fuzzy curated match, then exact dynamic match.
func (c *Cache) Lookup(question string) (Entry, bool) {
	normalized := Normalize(question)

	if e, ok := c.curated[normalized]; ok {
		return e, true
	}

	for _, key := range c.curatedKeys {
		if similar(normalized, key) {
			return c.curated[key], true
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.dynamic[hashKey(normalized)]
	return e, ok
}

// Insert admits a substantive answer into the dynamic tier and persists
// the tier synchronously. Short answers are silently skipped.
func (c *Cache) Insert(ctx context.Context, question string, e Entry) error {
	if len(e.Answer) <= minSubstantiveLen {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.dynamic[hashKey(Normalize(question))] = e

	if c.store == nil {
		return nil
	}
	blob, err := json.Marshal(c.dynamic)
	if err != nil {
		return fmt.Errorf("marshal dynamic cache: %w", err)
	}
	if err := c.store.Save(ctx, blob); err != nil {
		return fmt.Errorf("persist dynamic cache: %w", err)
	}
	return nil
}

// DynamicLen reports the dynamic tier size (for health and metrics).
func (c *Cache) DynamicLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dynamic)
}

func hashKey(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
