package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"elegance-storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "draft:"

// RedisStore implements Store on Redis. Every write refreshes the TTL, so
// abandoned sessions expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed draft store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context) (string, *Manager, error) {
	id := uuid.New().String()
	m := NewManager()

	if err := s.write(ctx, id, m); err != nil {
		return "", nil, err
	}
	return id, m, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Manager, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get draft: %w", err)
	}

	var d domain.DraftProduct
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return Restore(d), nil
}

func (s *RedisStore) Save(ctx context.Context, id string, m *Manager) error {
	exists, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("redis exists draft: %w", err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}
	return s.write(ctx, id, m)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("redis del draft: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, id string, m *Manager) error {
	data, err := json.Marshal(m.Draft())
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft: %w", err)
	}
	return nil
}
