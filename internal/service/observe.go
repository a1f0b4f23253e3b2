package service

import (
	"context"
	"time"

	"medexam_backend/internal/util"
	"medexam_backend/pkg/monitoring"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ContentCache drops cached read models after a committed change.
type ContentCache interface {
	InvalidatePaper(ctx context.Context, paperID uint) error
	InvalidateQuestions(ctx context.Context, questionIDs ...uint) error
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeSuccess
	case util.IsNotFound(err):
		return monitoring.OutcomeNotFound
	default:
		return monitoring.OutcomeError
	}
}

func finish(span trace.Span, entity, operation string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	monitoring.ObserveOperation(entity, operation, outcomeOf(err), start)
	span.End()
}
