package main

import (
	"context"
	"fmt"

	"medexam_backend/internal/config"
	"medexam_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// batch applies an operation to ids one at a time, paced by a token bucket.
// It stops at the first failure; earlier ids stay committed.
type batch struct {
	limiter *rate.Limiter
}

func newBatch(cfg config.BatchConfig) *batch {
	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &batch{limiter: rate.NewLimiter(limit, burst)}
}

func (b *batch) run(ctx context.Context, ids []uint, fn func(ctx context.Context, id uint) error) error {
	for i, id := range ids {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := fn(ctx, id); err != nil {
			logger.Log.Error("batch stopped",
				zap.Uint("id", id),
				zap.Int("done", i),
				zap.Int("total", len(ids)),
				zap.Error(err),
			)
			return fmt.Errorf("id %d: %w", id, err)
		}
	}
	return nil
}
