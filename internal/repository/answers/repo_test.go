package answers

import (
	"context"
	"errors"
	"testing"

	"github.com/parcelworks/ordino/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	data map[string][]byte
	err  error
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	blob, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return blob, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = value
	return nil
}

func TestLoad_MissingKeyIsEmptyCache(t *testing.T) {
	repo := New(&mockStore{})

	blob, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if blob != nil {
		t.Errorf("blob = %v, want nil", blob)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	want := []byte(`{"abc":{"answer":"cached"}}`)
	if err := repo.Save(context.Background(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := ms.data["ordino:qa:dynamic"]; !ok {
		t.Fatalf("blob stored under wrong key: %v", ms.data)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Load = %s, want %s", got, want)
	}
}

func TestLoad_PropagatesStoreFailure(t *testing.T) {
	wantErr := errors.New("connection refused")
	repo := New(&mockStore{err: wantErr})

	if _, err := repo.Load(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
