// internal/wizard/progress/redis.go
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"carrier-portal/internal/common/database"
	"carrier-portal/internal/models"
)

// RedisStore keeps progress records in Redis, JSON-serialized. TTL of zero
// means records never expire.
type RedisStore struct {
	client *database.RedisClient
	ttl    time.Duration
}

func NewRedisStore(client *database.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.WizardProgress, error) {
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var p models.WizardProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("corrupt progress record %s: %w", key, err)
	}
	return &p, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, p *models.WizardProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress record: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
