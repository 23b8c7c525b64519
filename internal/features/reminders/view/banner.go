// Package view holds the per-view state of a reminder banner. A Banner mirrors
// the visibility stream of its reminder and forwards operator actions to it.
package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"dashboard-reminders/internal/core/broadcast"
	"dashboard-reminders/internal/features/reminders/domain"
	"dashboard-reminders/internal/features/reminders/ports"
)

// SeverityWarning is the alert style of every reminder banner.
const SeverityWarning = "warning"

// Outcome is how the feature configuration dialog was closed.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeCancelled Outcome = "cancelled"
)

// ErrInvalidOutcome is returned for an unknown dialog outcome.
var ErrInvalidOutcome = errors.New("invalid dialog outcome")

// Option configures a Banner.
type Option func(*Banner)

// WithPrerequisite makes the banner also follow the reminder of a feature
// that must be enabled first.
func WithPrerequisite(svc ports.ReminderService) Option {
	return func(b *Banner) {
		b.prerequisite = svc
	}
}

// Banner is one rendered reminder.
type Banner struct {
	service      ports.ReminderService
	prerequisite ports.ReminderService

	display             atomic.Bool
	prerequisiteEnabled atomic.Bool

	mu   sync.Mutex
	subs []*broadcast.Subscription[bool]
	wg   sync.WaitGroup
}

// NewBanner creates a detached banner for service.
func NewBanner(service ports.ReminderService, opts ...Option) *Banner {
	b := &Banner{service: service}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach subscribes to the reminder, and to the prerequisite if any. It is a
// no-op on an attached banner.
func (b *Banner) Attach() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.subs) > 0 {
		return
	}

	b.follow(b.service.Subscribe(), func(v bool) { b.display.Store(v) })
	if b.prerequisite != nil {
		b.follow(b.prerequisite.Subscribe(), func(v bool) { b.prerequisiteEnabled.Store(!v) })
	}
}

func (b *Banner) follow(sub *broadcast.Subscription[bool], apply func(bool)) {
	b.subs = append(b.subs, sub)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for v := range sub.C() {
			apply(v)
		}
	}()
}

// Detach releases the subscriptions and waits for the mirroring goroutines.
func (b *Banner) Detach() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	b.wg.Wait()
}

// Feature returns the feature of the underlying reminder.
func (b *Banner) Feature() domain.Feature {
	return b.service.Feature()
}

// Service returns the underlying reminder.
func (b *Banner) Service() ports.ReminderService {
	return b.service
}

// DisplayNotification is the last visibility this banner received.
func (b *Banner) DisplayNotification() bool {
	return b.display.Load()
}

// HasPrerequisite reports whether the banner follows a prerequisite reminder.
func (b *Banner) HasPrerequisite() bool {
	return b.prerequisite != nil
}

// PrerequisiteEnabled is true once the prerequisite reminder was hidden.
func (b *Banner) PrerequisiteEnabled() bool {
	return b.prerequisiteEnabled.Load()
}

// Severity returns the alert style.
func (b *Banner) Severity() string {
	return SeverityWarning
}

// RemindAfterDays is the snooze period shown in the dismiss text.
func (b *Banner) RemindAfterDays() int {
	return b.service.RemindAfterDays()
}

// Dismiss snoozes the reminder. The banner hides when the reminder emits.
func (b *Banner) Dismiss(ctx context.Context) (*domain.Snooze, error) {
	return b.service.Dismiss(ctx)
}

// DialogClosed handles the end of the configuration dialog. A submitted
// dialog re-resolves the reminder.
func (b *Banner) DialogClosed(ctx context.Context, outcome Outcome) error {
	switch outcome {
	case OutcomeSubmitted:
		return b.service.Resolve(ctx)
	case OutcomeCancelled:
		return nil
	}
	return ErrInvalidOutcome
}

// State is the JSON form of a banner.
type State struct {
	Feature             domain.Feature `json:"feature"`
	DisplayNotification bool           `json:"display_notification"`
	Severity            string         `json:"severity"`
	RemindAfterDays     int            `json:"remind_after_days"`
	Resolved            bool           `json:"resolved"`
	PrerequisiteEnabled *bool          `json:"prerequisite_enabled,omitempty"`
}

// State returns a snapshot of the banner.
func (b *Banner) State() State {
	s := State{
		Feature:             b.Feature(),
		DisplayNotification: b.DisplayNotification(),
		Severity:            b.Severity(),
		RemindAfterDays:     b.RemindAfterDays(),
		Resolved:            b.service.Resolved(),
	}
	if b.HasPrerequisite() {
		enabled := b.PrerequisiteEnabled()
		s.PrerequisiteEnabled = &enabled
	}
	return s
}
