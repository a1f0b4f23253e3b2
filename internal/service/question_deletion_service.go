package service

import (
	"context"
	"time"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/util"
	"medexam_backend/pkg/logger"
	"medexam_backend/pkg/monitoring"
	"medexam_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// deletionStats summarises one delete or restore run.
type deletionStats struct {
	Questions int64
	Children  int64
	Responses int64
	// paperIDs and questionIDs collect cache keys to drop after commit.
	paperIDs    []uint
	questionIDs []uint
}

func (d *deletionStats) record() {
	monitoring.AddRows("question", d.Questions)
	monitoring.AddRows("child", d.Children)
	monitoring.AddRows("response", d.Responses)
}

type QuestionDeletionService struct {
	Store *repository.ContentStore
	Cache ContentCache
}

func NewQuestionDeletionService(store *repository.ContentStore, cache ContentCache) *QuestionDeletionService {
	return &QuestionDeletionService{
		Store: store,
		Cache: cache,
	}
}

// Delete soft-deletes a question and every variant child beneath it in one
// transaction. Responses that pointed at a removed child are marked DELETED
// and keep the child's text. Re-running on a deleted question is a no-op.
func (s *QuestionDeletionService) Delete(ctx context.Context, questionID uint) (err error) {
	start := time.Now()
	ctx, span := tracing.Tracer.Start(ctx, "QuestionDeletionService.Delete",
		trace.WithAttributes(attribute.Int64("question.id", int64(questionID))))
	defer func() { finish(span, "question", "delete", start, err) }()

	var stats deletionStats
	err = s.Store.Transaction(ctx, func(tx *repository.ContentStore) error {
		return s.deleteInTx(tx, questionID, &stats)
	})
	if err != nil {
		logger.Log.Error("delete question failed", zap.Uint("question_id", questionID), zap.Error(err))
		return err
	}

	stats.record()
	s.invalidate(ctx, &stats)
	logger.Log.Info("question deleted",
		zap.Uint("question_id", questionID),
		zap.Int64("children", stats.Children),
		zap.Int64("responses", stats.Responses),
	)
	return nil
}

// DeleteInTx does the work of Delete on a transaction the caller already
// holds. It never opens a transaction of its own.
func (s *QuestionDeletionService) DeleteInTx(tx *repository.ContentStore, questionID uint) error {
	var stats deletionStats
	return s.deleteInTx(tx, questionID, &stats)
}

func (s *QuestionDeletionService) deleteInTx(tx *repository.ContentStore, questionID uint, stats *deletionStats) error {
	question, err := tx.Questions.FindByIDUnscoped(questionID)
	if err != nil {
		return err
	}
	return s.deleteLoaded(tx, question, stats)
}

func (s *QuestionDeletionService) deleteLoaded(tx *repository.ContentStore, question *model.Question, stats *deletionStats) error {
	handler, err := handlerFor(question.Type)
	if err != nil {
		return err
	}

	cs, err := handler.retireChildren(tx, question.ID, model.ResponseDeleted)
	if err != nil {
		return err
	}
	stats.Children += cs.Children
	stats.Responses += cs.Responses

	// children first, then the question itself
	n, err := tx.Questions.SoftDelete(question.ID)
	if err != nil {
		return err
	}
	stats.Questions += n
	stats.questionIDs = append(stats.questionIDs, question.ID)
	if question.PaperID != nil {
		stats.paperIDs = append(stats.paperIDs, *question.PaperID)
	}
	return nil
}

// RetireChild removes a single choice, part or station while its question
// stays live, e.g. when an author edits the question. status must be
// OBSOLETE or DELETED and is applied to the child's ACTIVE responses.
func (s *QuestionDeletionService) RetireChild(ctx context.Context, variant model.QuestionType, childID uint, status model.ResponseStatus) (err error) {
	start := time.Now()
	ctx, span := tracing.Tracer.Start(ctx, "QuestionDeletionService.RetireChild",
		trace.WithAttributes(
			attribute.String("question.type", string(variant)),
			attribute.Int64("child.id", int64(childID)),
			attribute.String("response.status", string(status)),
		))
	defer func() { finish(span, "child", "retire", start, err) }()

	if status != model.ResponseObsolete && status != model.ResponseDeleted {
		return util.ErrInvalidResponseStatus
	}
	handler, err := handlerFor(variant)
	if err != nil {
		return err
	}

	var cs childStats
	err = s.Store.Transaction(ctx, func(tx *repository.ContentStore) error {
		var err error
		cs, err = handler.retireChild(tx, childID, status)
		return err
	})
	if err != nil {
		logger.Log.Error("retire child failed",
			zap.String("type", string(variant)),
			zap.Uint("child_id", childID),
			zap.Error(err),
		)
		return err
	}

	monitoring.AddRows("child", cs.Children)
	monitoring.AddRows("response", cs.Responses)
	s.invalidate(ctx, &deletionStats{questionIDs: []uint{cs.QuestionID}})
	logger.Log.Info("question child retired",
		zap.String("type", string(variant)),
		zap.Uint("child_id", childID),
		zap.Uint("question_id", cs.QuestionID),
		zap.Int64("responses", cs.Responses),
	)
	return nil
}

// invalidate runs after commit; the change is already durable, so a cache
// failure is only logged.
func (s *QuestionDeletionService) invalidate(ctx context.Context, stats *deletionStats) {
	invalidateCache(ctx, s.Cache, stats)
}

func invalidateCache(ctx context.Context, cache ContentCache, stats *deletionStats) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateQuestions(ctx, stats.questionIDs...); err != nil {
		logger.Log.Warn("invalidate question cache failed", zap.Uints("question_ids", stats.questionIDs), zap.Error(err))
	}
	for _, id := range uniqueIDs(stats.paperIDs) {
		if err := cache.InvalidatePaper(ctx, id); err != nil {
			logger.Log.Warn("invalidate paper cache failed", zap.Uint("paper_id", id), zap.Error(err))
		}
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
