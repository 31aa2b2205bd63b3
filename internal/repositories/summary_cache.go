package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SummaryCacheRepository caches per-user dashboard summaries in Redis.
type SummaryCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewSummaryCacheRepository(client *redis.Client, expiration time.Duration) *SummaryCacheRepository {
	return &SummaryCacheRepository{client: client, exp: expiration}
}

func summaryKey(userID uuid.UUID) string {
	return fmt.Sprintf("summary:%s", userID)
}

// Get returns the cached summary, or (nil, nil) on a cache miss.
func (r *SummaryCacheRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Summary, error) {
	key := summaryKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var summary models.Summary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		logger.Log.Errorw("corrupt cached summary", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", summary,
	)
	return &summary, nil
}

// Set caches a summary with the repository's expiration.
func (r *SummaryCacheRepository) Set(ctx context.Context, userID uuid.UUID, summary models.Summary) error {
	key := summaryKey(userID)

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"value", summary,
		"error", err,
	)

	return err
}

// Invalidate drops the cached summary after a ledger mutation.
func (r *SummaryCacheRepository) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := summaryKey(userID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "invalidated",
		"error", err,
	)

	return err
}
