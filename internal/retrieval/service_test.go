package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/parcelworks/ordino/internal/domain"
)

func TestFusedSearch_PoolsAndRanks(t *testing.T) {
	svc, _, ms := newTestService(t)

	byVariant := map[int][]domain.Passage{
		1: {
			passage("Section 5-603. Accessory structures must be set back 25 feet.", "5-603", 0.30),
			passage("Section 4-100. Lot size minimums apply.", "4-100", 0.50),
		},
		2: {
			passage("Section 6-101. Zoning permits are required for structures over 200 sq ft.", "6-101", 0.10),
		},
	}
	ms.searchFn = func(_ context.Context, _ []float32, _ string, _ int) ([]domain.Passage, error) {
		return byVariant[ms.calls], nil
	}

	got, err := svc.FusedSearch(context.Background(), []string{"shed setback", "shed permit"}, "expanded", "loudoun", 5)
	if err != nil {
		t.Fatalf("FusedSearch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d passages, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Distance > got[i].Distance {
			t.Fatalf("pool not sorted ascending by distance: %v", got)
		}
	}
	if got[0].Section != "6-101" {
		t.Errorf("best passage = %q, want 6-101", got[0].Section)
	}
}

func TestFusedSearch_CoalescesByFingerprint(t *testing.T) {
	svc, _, ms := newTestService(t)

	// Same leading 100 bytes, different tails and distances.
	head := strings.Repeat("Setback rules for accessory structures in agricultural zones. ", 2)
	ms.searchFn = func(_ context.Context, _ []float32, _ string, _ int) ([]domain.Passage, error) {
		if ms.calls == 1 {
			return []domain.Passage{passage(head+"First tail.", "5-603", 0.20)}, nil
		}
		return []domain.Passage{passage(head+"Second tail.", "5-603", 0.10)}, nil
	}

	got, err := svc.FusedSearch(context.Background(), []string{"a", "b"}, "", "loudoun", 5)
	if err != nil {
		t.Fatalf("FusedSearch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d passages, want 1 after coalescing", len(got))
	}
	if !strings.HasSuffix(got[0].Text, "First tail.") {
		t.Error("coalescing must keep the first passage seen")
	}
}

func TestFusedSearch_CapsVariantFanOut(t *testing.T) {
	svc, me, ms := newTestService(t)
	ms.searchFn = func(_ context.Context, _ []float32, _ string, _ int) ([]domain.Passage, error) {
		return []domain.Passage{passage("some passage text", "5-603", 0.2)}, nil
	}

	variants := []string{"v1", "v2", "v3", "v4", "v5"}
	if _, err := svc.FusedSearch(context.Background(), variants, "expanded", "loudoun", 5); err != nil {
		t.Fatalf("FusedSearch: %v", err)
	}
	if ms.calls != 3 {
		t.Errorf("searches issued = %d, want 3", ms.calls)
	}
	if len(me.texts) != 3 || me.texts[2] != "v3" {
		t.Errorf("embedded texts = %v, want first three variants", me.texts)
	}
}

func TestFusedSearch_TruncatesToTopK(t *testing.T) {
	svc, _, ms := newTestService(t)
	ms.searchFn = func(_ context.Context, _ []float32, _ string, topK int) ([]domain.Passage, error) {
		out := make([]domain.Passage, 0, 4)
		for i, d := range []float64{0.4, 0.1, 0.3, 0.2} {
			out = append(out, passage(strings.Repeat("x", 10+i), "5-603", d))
		}
		return out, nil
	}

	got, err := svc.FusedSearch(context.Background(), []string{"only"}, "", "loudoun", 2)
	if err != nil {
		t.Fatalf("FusedSearch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d passages, want topK=2", len(got))
	}
	if got[0].Distance != 0.1 || got[1].Distance != 0.2 {
		t.Errorf("kept distances %v %v, want the two closest", got[0].Distance, got[1].Distance)
	}
}

func TestFusedSearch_FallsBackToExpandedQuery(t *testing.T) {
	svc, me, ms := newTestService(t)
	ms.searchFn = func(_ context.Context, _ []float32, _ string, _ int) ([]domain.Passage, error) {
		if ms.calls <= 2 {
			return nil, nil
		}
		return []domain.Passage{passage("fallback passage", "5-603", 0.3)}, nil
	}

	got, err := svc.FusedSearch(context.Background(), []string{"v1", "v2"}, "shed OR accessory structure", "loudoun", 5)
	if err != nil {
		t.Fatalf("FusedSearch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d passages, want 1 from fallback", len(got))
	}
	if me.texts[len(me.texts)-1] != "shed OR accessory structure" {
		t.Errorf("fallback embedded %q, want the expanded query", me.texts[len(me.texts)-1])
	}
}

func TestFusedSearch_EmptyFallbackIsTerminal(t *testing.T) {
	svc, _, ms := newTestService(t)
	ms.searchFn = func(_ context.Context, _ []float32, _ string, _ int) ([]domain.Passage, error) {
		return nil, nil
	}

	got, err := svc.FusedSearch(context.Background(), []string{"v1"}, "expanded", "loudoun", 5)
	if err != nil {
		t.Fatalf("empty result must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d passages, want none", len(got))
	}
}

func TestFusedSearch_PropagatesCollaboratorFailure(t *testing.T) {
	svc, me, _ := newTestService(t)
	wantErr := errors.New("embedding backend down")
	me.embedFn = func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
		return domain.EmbeddingResult{}, wantErr
	}

	if _, err := svc.FusedSearch(context.Background(), []string{"v1"}, "expanded", "loudoun", 5); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
