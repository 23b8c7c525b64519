package adapters

import (
	"context"
	"errors"
	"fmt"

	"dashboard-reminders/internal/core/cache"
)

// RedisSnoozeStore keeps a snooze deadline in Redis instead of the manager.
type RedisSnoozeStore struct {
	cache cache.Cache
	key   string
}

// NewRedisSnoozeStore creates a store for key.
func NewRedisSnoozeStore(c cache.Cache, key string) *RedisSnoozeStore {
	return &RedisSnoozeStore{cache: c, key: key}
}

// SnoozeDeadline implements ports.SnoozeStore. A missing key means never snoozed.
func (s *RedisSnoozeStore) SnoozeDeadline(ctx context.Context) (string, error) {
	data, err := s.cache.Get(ctx, s.key)
	if errors.Is(err, cache.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("adapters: failed to get %s from cache: %w", s.key, err)
	}
	return string(data), nil
}

// SetSnoozeDeadline implements ports.SnoozeStore.
func (s *RedisSnoozeStore) SetSnoozeDeadline(ctx context.Context, token string) error {
	if err := s.cache.Set(ctx, s.key, []byte(token), 0); err != nil {
		return fmt.Errorf("adapters: failed to save %s to cache: %w", s.key, err)
	}
	return nil
}
