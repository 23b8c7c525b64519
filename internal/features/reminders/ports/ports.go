package ports

import (
	"context"

	"dashboard-reminders/internal/core/broadcast"
	"dashboard-reminders/internal/features/notifications/domain"
	reminder "dashboard-reminders/internal/features/reminders/domain"
)

// StatusSource reports whether the gated feature is already active.
// This is a Secondary Port (Driven Port).
type StatusSource interface {
	FeatureEnabled(ctx context.Context) (bool, error)
}

// SnoozeStore persists the snooze deadline token of one feature.
// An empty token means no snooze was ever set.
type SnoozeStore interface {
	SnoozeDeadline(ctx context.Context) (string, error)
	SetSnoozeDeadline(ctx context.Context, token string) error
}

// Notifier surfaces a message to the operator. It is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, kind domain.Kind, title, body string)
}

// ReminderService is the capability the views and flows use to drive one reminder.
// This is the Primary Port.
type ReminderService interface {
	// Feature returns the feature this reminder belongs to.
	Feature() reminder.Feature
	// Start resolves the initial visibility in the background.
	Start(ctx context.Context)
	// Subscribe attaches a view. The latest visibility is replayed immediately.
	Subscribe() *broadcast.Subscription[bool]
	// CurrentlyVisible returns the latest emitted visibility.
	CurrentlyVisible() bool
	// Resolved reports whether any visibility was emitted yet.
	Resolved() bool
	// SetVisibility forces the visibility, superseding in-flight resolutions.
	SetVisibility(visible bool)
	// Dismiss hides the reminder and persists a new snooze deadline.
	Dismiss(ctx context.Context) (*reminder.Snooze, error)
	// Resolve recomputes visibility from feature status and snooze deadline.
	Resolve(ctx context.Context) error
	// RemindAfterDays is the snooze period applied by Dismiss.
	RemindAfterDays() int
}
