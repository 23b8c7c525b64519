package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"dashboard-reminders/internal/core/cache"
	"dashboard-reminders/internal/features/notifications/domain"
)

const notificationsCacheKey = "notifications"

// RedisNotificationRepository implements ports.NotificationRepository on top of the cache.
// The history is stored as one JSON array.
type RedisNotificationRepository struct {
	cache cache.Cache
	// mu serializes read-modify-write cycles from this process.
	mu sync.Mutex
}

// NewRedisNotificationRepository creates a new RedisNotificationRepository.
func NewRedisNotificationRepository(c cache.Cache) *RedisNotificationRepository {
	return &RedisNotificationRepository{
		cache: c,
	}
}

// Append stores n at the head of the history and trims it to limit entries.
func (r *RedisNotificationRepository) Append(ctx context.Context, n *domain.Notification, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, err := r.load(ctx)
	if err != nil {
		return err
	}

	history = prepend(history, *n, limit)

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}

	if err := r.cache.Set(ctx, notificationsCacheKey, data, 0); err != nil {
		return fmt.Errorf("failed to save notifications to cache: %w", err)
	}

	return nil
}

// List returns the stored history, newest first.
func (r *RedisNotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Clear removes the whole history.
func (r *RedisNotificationRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.cache.Delete(ctx, notificationsCacheKey); err != nil {
		return fmt.Errorf("failed to delete notifications from cache: %w", err)
	}
	return nil
}

func (r *RedisNotificationRepository) load(ctx context.Context) ([]domain.Notification, error) {
	data, err := r.cache.Get(ctx, notificationsCacheKey)
	if errors.Is(err, cache.ErrNotFound) {
		return []domain.Notification{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications from cache: %w", err)
	}

	var history []domain.Notification
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}

	return history, nil
}

func prepend(history []domain.Notification, n domain.Notification, limit int) []domain.Notification {
	history = append([]domain.Notification{n}, history...)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history
}
