package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoCode is returned when no verification code entry exists for an email.
var ErrNoCode = errors.New("no verification code for email")

// CodeEntry is a single-use verification code with an absolute expiry.
type CodeEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CodeStore persists at most one verification code entry per email. Put
// overwrites any existing entry, so two concurrent issues race and the last
// writer wins; that is acceptable for this domain.
type CodeStore interface {
	Put(ctx context.Context, email string, entry CodeEntry) error
	Get(ctx context.Context, email string) (*CodeEntry, error)
	Delete(ctx context.Context, email string) error
}

// cleanupGrace keeps the Redis key alive past the logical expiry so that a
// check after the deadline can be answered with an explicit expired error
// instead of not-found.
const cleanupGrace = time.Hour

type redisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore creates a Redis-backed verification code store.
func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{client: client}
}

func codeKey(email string) string {
	return "verification_code:" + email
}

func (s *redisCodeStore) Put(ctx context.Context, email string, entry CodeEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ttl := time.Until(entry.ExpiresAt) + cleanupGrace

	return s.client.Set(ctx, codeKey(email), data, ttl).Err()
}

func (s *redisCodeStore) Get(ctx context.Context, email string) (*CodeEntry, error) {
	data, err := s.client.Get(ctx, codeKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoCode
	}
	if err != nil {
		return nil, err
	}

	var entry CodeEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, codeKey(email)).Err()
}
