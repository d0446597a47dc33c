package chi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/ingest"
	healthuc "github.com/parcelworks/ordino/internal/usecase/health"
)

type mockAnswerer struct {
	answerFn func(ctx context.Context, question, jurisdiction string) (domain.Answer, error)
	calls    int
}

func (m *mockAnswerer) AnswerQuestion(ctx context.Context, question, jurisdiction string) (domain.Answer, error) {
	m.calls++
	if m.answerFn != nil {
		return m.answerFn(ctx, question, jurisdiction)
	}
	return domain.Answer{}, errors.New("not configured")
}

type mockIngester struct {
	ingestFn func(ctx context.Context, jurisdiction, text string) (ingest.Result, error)
	statsFn  func(ctx context.Context, jurisdiction string) (ingest.Stats, error)
	calls    int
}

func (m *mockIngester) IngestDocument(ctx context.Context, jurisdiction, text string) (ingest.Result, error) {
	m.calls++
	if m.ingestFn != nil {
		return m.ingestFn(ctx, jurisdiction, text)
	}
	return ingest.Result{}, errors.New("not configured")
}

func (m *mockIngester) Stats(ctx context.Context, jurisdiction string) (ingest.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, jurisdiction)
	}
	return ingest.Stats{}, errors.New("not configured")
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, ma *mockAnswerer, mi *mockIngester) http.Handler {
	t.Helper()
	hs := healthuc.New(&mockPinger{}, nil)
	s := NewServer(ma, mi, hs, zap.NewNop())
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func newUnhealthyService() *healthuc.Service {
	return healthuc.New(&mockPinger{err: errors.New("conn refused")}, nil)
}

func zapNop() *zap.Logger { return zap.NewNop() }

func newRouterFor(s *Server) http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
