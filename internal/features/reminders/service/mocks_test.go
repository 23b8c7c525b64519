package service

import (
	"context"

	notification "dashboard-reminders/internal/features/notifications/domain"

	"github.com/stretchr/testify/mock"
)

// MockStatusSource is a mock implementation of ports.StatusSource
type MockStatusSource struct {
	mock.Mock
}

func (m *MockStatusSource) FeatureEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockSnoozeStore is a mock implementation of ports.SnoozeStore
type MockSnoozeStore struct {
	mock.Mock
}

func (m *MockSnoozeStore) SnoozeDeadline(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSnoozeStore) SetSnoozeDeadline(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, kind notification.Kind, title, body string) {
	m.Called(ctx, kind, title, body)
}
