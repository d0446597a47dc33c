package answercache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// blobStore is an in-memory Store for tests.
type blobStore struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (s *blobStore) Load(_ context.Context) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.data, nil
}

func (s *blobStore) Save(_ context.Context, blob []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = blob
	s.saves++
	return nil
}

func newTestCache(t *testing.T, store Store) *Cache {
	t.Helper()
	return New(context.Background(), store, zap.NewNop())
}

func TestLookup_ExactCurated(t *testing.T) {
	c := newTestCache(t, nil)

	e, ok := c.Lookup("Can I build a shed in AR-1?")
	if !ok {
		t.Fatal("expected curated hit")
	}
	if e.TemplateType != "setback" {
		t.Errorf("TemplateType = %q, want setback", e.TemplateType)
	}
	if e.Fields["reference"] != "Section 5-603" {
		t.Errorf("reference = %q", e.Fields["reference"])
	}
}

func TestLookup_FuzzyCurated(t *testing.T) {
	c := newTestCache(t, nil)

	// Different phrasing, same restricted vocabulary {shed, ar-1}.
	e, ok := c.Lookup("may i construct a shed in my ar-1 parcel")
	if !ok {
		t.Fatal("expected fuzzy curated hit")
	}
	if e.TemplateType != "setback" {
		t.Errorf("TemplateType = %q, want setback", e.TemplateType)
	}
}

func TestLookup_Miss(t *testing.T) {
	c := newTestCache(t, nil)

	if _, ok := c.Lookup("what are the steep slope regulations"); ok {
		t.Error("expected miss for uncached question")
	}
}

func TestInsertAndLookup_Dynamic(t *testing.T) {
	store := &blobStore{}
	c := newTestCache(t, store)

	question := "what are the steep slope regulations"
	answer := strings.Repeat("steep slopes over 25 percent require conservation. ", 4)

	if err := c.Insert(context.Background(), question, Entry{Answer: answer, TemplateType: "simple"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1 (synchronous persistence)", store.saves)
	}

	e, ok := c.Lookup(question)
	if !ok {
		t.Fatal("expected dynamic hit")
	}
	if e.Answer != answer {
		t.Errorf("Answer mismatch")
	}

	// A fresh cache over the same store sees the persisted entry.
	c2 := newTestCache(t, store)
	if _, ok := c2.Lookup(question); !ok {
		t.Error("persisted dynamic entry lost across restart")
	}
}

func TestInsert_SkipsShortAnswers(t *testing.T) {
	store := &blobStore{}
	c := newTestCache(t, store)

	if err := c.Insert(context.Background(), "short question", Entry{Answer: "too short"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if store.saves != 0 {
		t.Error("short answer must not be persisted")
	}
	if c.DynamicLen() != 0 {
		t.Error("short answer must not enter the dynamic tier")
	}
}

func TestNew_FailsOpen(t *testing.T) {
	for name, store := range map[string]Store{
		"load error":   &blobStore{loadErr: errors.New("connection refused")},
		"corrupt blob": &blobStore{data: []byte("{not json")},
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestCache(t, store)
			if c.DynamicLen() != 0 {
				t.Error("unreadable store must yield an empty dynamic tier")
			}
			// Curated tier still works.
			if _, ok := c.Lookup("minimum lot size ar-1"); !ok {
				t.Error("curated tier must survive a broken store")
			}
		})
	}
}
