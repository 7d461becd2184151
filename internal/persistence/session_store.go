package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noorskin/storefront/internal/domain"
)

// DefaultSessionKey is the storage key of the console session record.
const DefaultSessionKey = "manager-auth-storage"

// RedisSessionStore keeps the single console session record under a fixed key.
type RedisSessionStore struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisSessionStore builds a store. A zero ttl keeps the record until cleared.
func NewRedisSessionStore(client redis.UniversalClient, key string, ttl time.Duration) *RedisSessionStore {
	if key == "" {
		key = DefaultSessionKey
	}
	return &RedisSessionStore{client: client, key: key, ttl: ttl}
}

// Load returns the stored record, or nil when none exists.
func (s *RedisSessionStore) Load(ctx context.Context) (*domain.PersistedSession, error) {
	if s.client == nil {
		return nil, errors.New("redis client not configured")
	}
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var record domain.PersistedSession
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &record, nil
}

// Save overwrites the stored record.
func (s *RedisSessionStore) Save(ctx context.Context, record domain.PersistedSession) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// Clear removes the stored record. Clearing an absent record is not an error.
func (s *RedisSessionStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Del(ctx, s.key).Err()
}
