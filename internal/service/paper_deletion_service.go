package service

import (
	"context"
	"time"

	"medexam_backend/internal/repository"
	"medexam_backend/pkg/logger"
	"medexam_backend/pkg/monitoring"
	"medexam_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type PaperDeletionService struct {
	Store     *repository.ContentStore
	Questions *QuestionDeletionService
	Cache     ContentCache
}

func NewPaperDeletionService(store *repository.ContentStore, questions *QuestionDeletionService, cache ContentCache) *PaperDeletionService {
	return &PaperDeletionService{
		Store:     store,
		Questions: questions,
		Cache:     cache,
	}
}

// Delete soft-deletes a paper and every question under it, deleted or not,
// in one transaction. The paper's own timestamp is written last.
func (s *PaperDeletionService) Delete(ctx context.Context, paperID uint) (err error) {
	start := time.Now()
	ctx, span := tracing.Tracer.Start(ctx, "PaperDeletionService.Delete",
		trace.WithAttributes(attribute.Int64("paper.id", int64(paperID))))
	defer func() { finish(span, "paper", "delete", start, err) }()

	var stats deletionStats
	err = s.Store.Transaction(ctx, func(tx *repository.ContentStore) error {
		if _, err := tx.Papers.FindByIDUnscoped(paperID); err != nil {
			return err
		}

		questions, err := tx.Questions.ListByPaperUnscoped(paperID)
		if err != nil {
			return err
		}
		for i := range questions {
			if err := s.Questions.deleteLoaded(tx, &questions[i], &stats); err != nil {
				return err
			}
		}

		if _, err := tx.Papers.SoftDelete(paperID); err != nil {
			return err
		}
		stats.paperIDs = append(stats.paperIDs, paperID)
		return nil
	})
	if err != nil {
		logger.Log.Error("delete paper failed", zap.Uint("paper_id", paperID), zap.Error(err))
		return err
	}

	stats.record()
	invalidateCache(ctx, s.Cache, &stats)
	logger.Log.Info("paper deleted",
		zap.Uint("paper_id", paperID),
		zap.Int64("questions", stats.Questions),
		zap.Int64("children", stats.Children),
		zap.Int64("responses", stats.Responses),
	)
	return nil
}

// Restore brings a paper, its soft-deleted questions and their children back.
// Response statuses are historical and are left as they are.
func (s *PaperDeletionService) Restore(ctx context.Context, paperID uint) (err error) {
	start := time.Now()
	ctx, span := tracing.Tracer.Start(ctx, "PaperDeletionService.Restore",
		trace.WithAttributes(attribute.Int64("paper.id", int64(paperID))))
	defer func() { finish(span, "paper", "restore", start, err) }()

	var stats deletionStats
	err = s.Store.Transaction(ctx, func(tx *repository.ContentStore) error {
		if _, err := tx.Papers.FindByIDUnscoped(paperID); err != nil {
			return err
		}
		if _, err := tx.Papers.Restore(paperID); err != nil {
			return err
		}

		questions, err := tx.Questions.ListDeletedByPaper(paperID)
		if err != nil {
			return err
		}
		for _, q := range questions {
			handler, err := handlerFor(q.Type)
			if err != nil {
				return err
			}
			n, err := tx.Questions.Restore(q.ID)
			if err != nil {
				return err
			}
			stats.Questions += n

			restored, err := handler.restoreChildren(tx, q.ID)
			if err != nil {
				return err
			}
			stats.Children += restored
			stats.questionIDs = append(stats.questionIDs, q.ID)
		}
		stats.paperIDs = append(stats.paperIDs, paperID)
		return nil
	})
	if err != nil {
		logger.Log.Error("restore paper failed", zap.Uint("paper_id", paperID), zap.Error(err))
		return err
	}

	monitoring.AddRows("question_restored", stats.Questions)
	monitoring.AddRows("child_restored", stats.Children)
	invalidateCache(ctx, s.Cache, &stats)
	logger.Log.Info("paper restored",
		zap.Uint("paper_id", paperID),
		zap.Int64("questions", stats.Questions),
		zap.Int64("children", stats.Children),
	)
	return nil
}
