package service

import (
	"context"
	"fmt"

	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/features/notifications/domain"
	"dashboard-reminders/internal/features/notifications/ports"

	"go.uber.org/zap"
)

// DefaultHistoryLimit bounds the stored history when no limit is configured.
const DefaultHistoryLimit = 50

// NotificationServiceImpl implements ports.NotificationService.
type NotificationServiceImpl struct {
	repo  ports.NotificationRepository
	limit int
}

// NewNotificationService creates a new NotificationServiceImpl.
func NewNotificationService(repo ports.NotificationRepository, limit int) *NotificationServiceImpl {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &NotificationServiceImpl{
		repo:  repo,
		limit: limit,
	}
}

// Notify shows a notification to the operator. Delivery is best effort:
// invalid input and storage failures are logged, never returned.
func (s *NotificationServiceImpl) Notify(ctx context.Context, kind domain.Kind, title, body string) {
	log := logger.Named("notifications")

	n, err := domain.NewNotification(kind, title, body)
	if err != nil {
		log.Warn("Dropping invalid notification", zap.String("kind", string(kind)), zap.String("title", title), zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("id", n.ID),
		zap.String("kind", string(n.Kind)),
		zap.String("title", n.Title),
	}
	if n.Kind == domain.KindError {
		log.Error("Notification", fields...)
	} else {
		log.Info("Notification", fields...)
	}

	if err := s.repo.Append(ctx, n, s.limit); err != nil {
		log.Warn("Failed to store notification", zap.String("id", n.ID), zap.Error(err))
	}
}

// List returns the notification history, newest first.
func (s *NotificationServiceImpl) List(ctx context.Context) ([]domain.Notification, error) {
	history, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list notifications: %w", err)
	}
	return history, nil
}

// Clear removes the notification history.
func (s *NotificationServiceImpl) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("service: failed to clear notifications: %w", err)
	}
	return nil
}
