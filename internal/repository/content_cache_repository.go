package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const cacheKeyPrefix = "medexam"

func PaperCacheKey(id uint) string {
	return fmt.Sprintf("%s:paper:%d", cacheKeyPrefix, id)
}

func QuestionCacheKey(id uint) string {
	return fmt.Sprintf("%s:question:%d", cacheKeyPrefix, id)
}

// ContentCacheRepository drops cached read models of papers and questions
// once their soft-delete state changes. A nil Redis client disables it.
type ContentCacheRepository struct {
	Redis *redis.Client
}

func NewContentCacheRepository(rdb *redis.Client) *ContentCacheRepository {
	return &ContentCacheRepository{Redis: rdb}
}

func (r *ContentCacheRepository) InvalidatePaper(ctx context.Context, paperID uint) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.Del(ctx, PaperCacheKey(paperID)).Err()
}

func (r *ContentCacheRepository) InvalidateQuestions(ctx context.Context, questionIDs ...uint) error {
	if r.Redis == nil || len(questionIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(questionIDs))
	for _, id := range questionIDs {
		keys = append(keys, QuestionCacheKey(id))
	}
	return r.Redis.Del(ctx, keys...).Err()
}
