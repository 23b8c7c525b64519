package adapters

import (
	"context"
	"sync"

	"dashboard-reminders/internal/features/notifications/domain"
)

// MemoryNotificationRepository keeps the history in process memory.
// It is used when Redis is unreachable at startup.
type MemoryNotificationRepository struct {
	mu      sync.RWMutex
	history []domain.Notification
}

// NewMemoryNotificationRepository creates an empty in-memory repository.
func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{}
}

// Append stores n at the head of the history and trims it to limit entries.
func (r *MemoryNotificationRepository) Append(_ context.Context, n *domain.Notification, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = prepend(r.history, *n, limit)
	return nil
}

// List returns a copy of the history, newest first.
func (r *MemoryNotificationRepository) List(_ context.Context) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Notification, len(r.history))
	copy(out, r.history)
	return out, nil
}

// Clear removes the whole history.
func (r *MemoryNotificationRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = nil
	return nil
}
