// Package answers persists the dynamic answer-cache blob under a single
// key-value entry.
package answers

import (
	"context"
	"errors"
	"fmt"

	"github.com/parcelworks/ordino/internal/db"
	"github.com/parcelworks/ordino/internal/domain"
)

const cacheKey = domain.KeyPrefix + "qa:dynamic"

// store is the consumer interface for cache persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements answercache.Store.
type Repo struct {
	store store
}

func New(s store) *Repo {
	return &Repo{store: s}
}

// Load returns the persisted cache blob, or nil when none was saved yet.
func (r *Repo) Load(ctx context.Context) ([]byte, error) {
	blob, err := r.store.Get(ctx, cacheKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load answer cache: %w", err)
	}
	return blob, nil
}

// Save overwrites the persisted cache blob.
func (r *Repo) Save(ctx context.Context, blob []byte) error {
	if err := r.store.Set(ctx, cacheKey, blob); err != nil {
		return fmt.Errorf("save answer cache: %w", err)
	}
	return nil
}
