package kv

import (
	"context"
	"encoding/json"

	"github.com/karimbenali/boucherie-backend/pkg/redis"
)

// RedisStore backs the snapshot layer with redis strings and lists.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the shared redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, 0)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key)
}

func (s *RedisStore) AppendJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, key, raw)
}

func (s *RedisStore) ListJSON(ctx context.Context, key string) ([]string, error) {
	entries, err := s.client.LRange(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}
