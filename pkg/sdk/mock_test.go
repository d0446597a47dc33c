package ordino

import (
	"context"

	"github.com/parcelworks/ordino/internal/domain"
	"github.com/parcelworks/ordino/internal/ingest"
	healthuc "github.com/parcelworks/ordino/internal/usecase/health"
)

// --- answerUseCase mock ---

type mockAnswerUC struct {
	answerFn func(ctx context.Context, question, jurisdiction string) (domain.Answer, error)
}

func (m *mockAnswerUC) AnswerQuestion(ctx context.Context, question, jurisdiction string) (domain.Answer, error) {
	return m.answerFn(ctx, question, jurisdiction)
}

// --- ingestUseCase mock ---

type mockIngestUC struct {
	ingestFn func(ctx context.Context, jurisdiction, text string) (ingest.Result, error)
}

func (m *mockIngestUC) IngestDocument(ctx context.Context, jurisdiction, text string) (ingest.Result, error) {
	return m.ingestFn(ctx, jurisdiction, text)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
