package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the answering path works but a provider is impaired.
	Degraded Status = "degraded"
	// Unhealthy indicates the service cannot answer questions.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(db DBPinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, embedding: embedding}
}

// Check runs health checks against all components. A database failure
// is Unhealthy: without the store there is no retrieval and no answer
// cache. A provider failure alone is Degraded: curated answers keep
// being served from memory.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	dbFailed := false
	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		dbFailed = true
	} else {
		checks["database"] = CheckOK
	}

	embeddingFailed := false
	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			embeddingFailed = true
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case dbFailed:
		status = Unhealthy
	case embeddingFailed:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
