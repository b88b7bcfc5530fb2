package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// VisitRepository tracks the site-wide visit counter.
type VisitRepository interface {
	Count(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
}

const visitCountKey = "site:visit_count"

type redisVisitRepository struct {
	client *redis.Client
}

// NewRedisVisitRepository creates a Redis-backed visit counter.
func NewRedisVisitRepository(client *redis.Client) VisitRepository {
	return &redisVisitRepository{client: client}
}

func (r *redisVisitRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.client.Get(ctx, visitCountKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *redisVisitRepository) Increment(ctx context.Context) (int64, error) {
	return r.client.Incr(ctx, visitCountKey).Result()
}
