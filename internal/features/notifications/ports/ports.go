package ports

import (
	"context"

	"dashboard-reminders/internal/features/notifications/domain"
)

// NotificationService defines the primary port for user notifications.
type NotificationService interface {
	Notify(ctx context.Context, kind domain.Kind, title, body string)
	List(ctx context.Context) ([]domain.Notification, error)
	Clear(ctx context.Context) error
}

// NotificationRepository defines the secondary port for notification history.
// Append keeps at most limit entries, newest first.
type NotificationRepository interface {
	Append(ctx context.Context, n *domain.Notification, limit int) error
	List(ctx context.Context) ([]domain.Notification, error)
	Clear(ctx context.Context) error
}
