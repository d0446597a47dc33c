// Package chi implements the HTTP transport over the go-chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/ingest"
	healthuc "github.com/parcelworks/ordino/internal/usecase/health"
)

// maxIngestBytes caps the request body for ordinance uploads.
const maxIngestBytes = 16 << 20

// errorCode is a machine-readable error identifier in API responses.
type errorCode string

const (
	codeBadRequest          errorCode = "bad_request"
	codeUnauthorized        errorCode = "unauthorized"
	codeJurisdictionUnknown errorCode = "jurisdiction_not_found"
	codeEmbeddingProvider   errorCode = "embedding_provider_error"
	codeGenerationProvider  errorCode = "generation_provider_error"
	codeIndexUnavailable    errorCode = "index_unavailable"
	codeInternalError       errorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// Answerer answers zoning questions.
type Answerer interface {
	AnswerQuestion(ctx context.Context, question, jurisdiction string) (domain.Answer, error)
}

// Ingester loads ordinance documents into the index.
type Ingester interface {
	IngestDocument(ctx context.Context, jurisdiction, text string) (ingest.Result, error)
	Stats(ctx context.Context, jurisdiction string) (ingest.Stats, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the question-answering API over HTTP.
type Server struct {
	answerer      Answerer
	ingester      Ingester
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answerer Answerer,
	ingester Ingester,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		answerer: answerer,
		ingester: ingester,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrJurisdictionNotFound, http.StatusNotFound, codeJurisdictionUnknown),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrGenerationProvider, http.StatusBadGateway, codeGenerationProvider),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, codeIndexUnavailable),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/ask", s.AskQuestion)
	r.Post("/ingest", s.IngestDocument)
	r.Get("/jurisdictions/{jurisdiction}", s.JurisdictionStats)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type askRequest struct {
	Question     string `json:"question"`
	Jurisdiction string `json:"jurisdiction"`
}

// AskQuestion handles POST /ask.
func (s *Server) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	req.Jurisdiction = strings.TrimSpace(req.Jurisdiction)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "question is required")
		return
	}
	if req.Jurisdiction == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "jurisdiction is required")
		return
	}

	answer, err := s.answerer.AnswerQuestion(r.Context(), req.Question, req.Jurisdiction)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

type ingestRequest struct {
	Jurisdiction string `json:"jurisdiction"`
	Text         string `json:"text"`
}

type ingestResponse struct {
	Jurisdiction string `json:"jurisdiction"`
	Chunks       int    `json:"chunks"`
	Tokens       int    `json:"tokens"`
}

// IngestDocument handles POST /ingest.
func (s *Server) IngestDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIngestBytes)

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	req.Jurisdiction = strings.TrimSpace(req.Jurisdiction)
	if req.Jurisdiction == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "jurisdiction is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "text is required")
		return
	}

	result, err := s.ingester.IngestDocument(r.Context(), req.Jurisdiction, req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		Jurisdiction: req.Jurisdiction,
		Chunks:       result.Chunks,
		Tokens:       result.Tokens,
	})
}

type jurisdictionResponse struct {
	Jurisdiction string `json:"jurisdiction"`
	Chunks       int    `json:"chunks"`
}

// JurisdictionStats handles GET /jurisdictions/{jurisdiction}.
func (s *Server) JurisdictionStats(w http.ResponseWriter, r *http.Request) {
	jurisdiction := strings.TrimSpace(chi.URLParam(r, "jurisdiction"))
	if jurisdiction == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "jurisdiction is required")
		return
	}

	stats, err := s.ingester.Stats(r.Context(), jurisdiction)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, jurisdictionResponse{
		Jurisdiction: jurisdiction,
		Chunks:       stats.Chunks,
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrJurisdictionNotFound,
		domain.ErrEmbeddingProvider,
		domain.ErrGenerationProvider,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
