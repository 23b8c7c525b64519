package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dashboard-reminders/internal/core/broadcast"
	"dashboard-reminders/internal/core/logger"
	notification "dashboard-reminders/internal/features/notifications/domain"
	"dashboard-reminders/internal/features/reminders/domain"
	"dashboard-reminders/internal/features/reminders/ports"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Resolve when an explicit visibility change
// happened while the resolution was in flight. The explicit state wins.
var ErrSuperseded = errors.New("reminder resolution superseded")

// Option configures a ReminderServiceImpl.
type Option func(*ReminderServiceImpl)

// WithRemindAfterDays sets the snooze period applied by Dismiss.
func WithRemindAfterDays(days int) Option {
	return func(s *ReminderServiceImpl) {
		if days > 0 {
			s.remindAfterDays = days
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ReminderServiceImpl) {
		s.now = now
	}
}

// ReminderServiceImpl implements ports.ReminderService for one feature.
type ReminderServiceImpl struct {
	feature  domain.Feature
	status   ports.StatusSource
	store    ports.SnoozeStore
	notifier ports.Notifier

	remindAfterDays int
	now             func() time.Time
	log             *zap.Logger

	state *broadcast.Cell[bool]

	// mu guards generation and pending and orders emissions against them.
	mu         sync.Mutex
	generation uint64
	// pending counts dismissals whose deadline is still being written.
	pending int
}

// NewReminderService creates an isolated reminder for feature. Nothing is
// emitted until Start, Resolve, SetVisibility or Dismiss runs.
func NewReminderService(feature domain.Feature, status ports.StatusSource, store ports.SnoozeStore, notifier ports.Notifier, opts ...Option) *ReminderServiceImpl {
	s := &ReminderServiceImpl{
		feature:         feature,
		status:          status,
		store:           store,
		notifier:        notifier,
		remindAfterDays: domain.DefaultRemindAfterDays,
		now:             time.Now,
		log:             logger.Named("reminders").With(zap.String("feature", feature.Name)),
		state:           broadcast.NewCell(false),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feature returns the feature this reminder belongs to.
func (s *ReminderServiceImpl) Feature() domain.Feature {
	return s.feature
}

// RemindAfterDays is the snooze period applied by Dismiss.
func (s *ReminderServiceImpl) RemindAfterDays() int {
	return s.remindAfterDays
}

// Subscribe attaches a new view.
func (s *ReminderServiceImpl) Subscribe() *broadcast.Subscription[bool] {
	return s.state.Subscribe()
}

// Subscribers returns the number of attached views.
func (s *ReminderServiceImpl) Subscribers() int {
	return s.state.Subscribers()
}

// CurrentlyVisible returns the latest emitted visibility, false before the first emission.
func (s *ReminderServiceImpl) CurrentlyVisible() bool {
	v, _ := s.state.Get()
	return v
}

// Resolved reports whether a visibility value was emitted yet.
func (s *ReminderServiceImpl) Resolved() bool {
	_, published := s.state.Get()
	return published
}

// Start resolves the initial visibility in the background.
func (s *ReminderServiceImpl) Start(ctx context.Context) {
	go s.resolveInBackground(ctx)
}

func (s *ReminderServiceImpl) resolveInBackground(ctx context.Context) {
	err := s.Resolve(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSuperseded):
		s.log.Debug("Initial resolution superseded")
	default:
		s.log.Warn("Failed to resolve reminder visibility", zap.Error(err))
	}
}

// Resolve derives visibility from the feature status and the persisted
// snooze deadline and emits it. Nothing is emitted on failure.
func (s *ReminderServiceImpl) Resolve(ctx context.Context) error {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	token, err := s.currentToken(ctx)
	if err != nil {
		return err
	}
	visible := domain.IsVisible(token, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen || s.pending > 0 {
		return ErrSuperseded
	}
	s.state.Set(visible)
	s.log.Debug("Resolved reminder visibility", zap.String("token", token), zap.Bool("visible", visible))

	return nil
}

func (s *ReminderServiceImpl) currentToken(ctx context.Context) (string, error) {
	enabled, err := s.status.FeatureEnabled(ctx)
	if err != nil {
		return "", fmt.Errorf("service: failed to read %s status: %w", s.feature.Name, err)
	}
	if enabled {
		return domain.NeverToken, nil
	}

	token, err := s.store.SnoozeDeadline(ctx)
	if err != nil {
		return "", fmt.Errorf("service: failed to read %s snooze deadline: %w", s.feature.Name, err)
	}
	return token, nil
}

// SetVisibility emits visible and discards in-flight resolutions.
func (s *ReminderServiceImpl) SetVisibility(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state.Set(visible)
}

// Dismiss hides the reminder immediately, then persists today plus
// RemindAfterDays as the new deadline. A persistence failure is returned
// and the reminder stays hidden. Resolutions overlapping the write are
// discarded since they may have read the previous deadline.
func (s *ReminderServiceImpl) Dismiss(ctx context.Context) (*domain.Snooze, error) {
	s.mu.Lock()
	s.generation++
	s.pending++
	s.state.Set(false)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generation++
		s.pending--
		s.mu.Unlock()
	}()

	snooze := domain.NewSnooze(s.feature, s.now(), s.remindAfterDays)
	if err := s.store.SetSnoozeDeadline(ctx, snooze.Token); err != nil {
		s.log.Warn("Failed to persist snooze deadline", zap.String("token", snooze.Token), zap.Error(err))
		return nil, fmt.Errorf("service: failed to persist %s snooze deadline: %w", s.feature.Name, err)
	}

	s.log.Info("Reminder muted", zap.String("until", snooze.Token))
	s.notifier.Notify(ctx, notification.KindSuccess, s.feature.MutedTitle(), s.feature.MutedBody(s.remindAfterDays))

	return &snooze, nil
}
