package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dashboard-reminders/internal/core/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ScheduleOff disables the periodic refresh.
const ScheduleOff = "off"

var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Refresher periodically re-resolves every registered reminder, so a feature
// enabled or disabled outside the dashboard is picked up.
type Refresher struct {
	registry *Registry
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

// NewRefresher validates schedule and prepares the cron runner. An empty
// schedule or ScheduleOff yields a refresher whose Start is a no-op.
func NewRefresher(registry *Registry, schedule string, timeout time.Duration) (*Refresher, error) {
	schedule = strings.TrimSpace(schedule)
	r := &Refresher{
		registry: registry,
		schedule: schedule,
		timeout:  timeout,
	}
	if r.Disabled() {
		return r, nil
	}

	if _, err := scheduleParser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("refresher: invalid schedule %q: %w", schedule, err)
	}

	cl := cronLogger{log: logger.Named("refresher").Sugar()}
	r.cron = cron.New(
		cron.WithParser(scheduleParser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := r.cron.AddFunc(schedule, func() { r.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("refresher: failed to schedule refresh: %w", err)
	}

	return r, nil
}

// Disabled reports whether the schedule turns the refresh off.
func (r *Refresher) Disabled() bool {
	return r.schedule == "" || strings.EqualFold(r.schedule, ScheduleOff)
}

// Start runs the schedule in the background.
func (r *Refresher) Start() {
	if r.Disabled() {
		logger.Named("refresher").Info("Periodic reminder refresh disabled")
		return
	}
	logger.Named("refresher").Info("Starting periodic reminder refresh", zap.String("schedule", r.schedule))
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx to end.
func (r *Refresher) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce re-resolves every reminder and logs failures.
func (r *Refresher) RunOnce(ctx context.Context) []Result {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := logger.Named("refresher")
	results := r.registry.ResolveAll(ctx)
	for _, res := range results {
		switch {
		case res.Err == nil:
			log.Debug("Reminder refreshed", zap.String("feature", res.Feature.Name), zap.Bool("visible", res.Visible))
		case errors.Is(res.Err, ErrSuperseded):
			log.Debug("Reminder refresh superseded", zap.String("feature", res.Feature.Name))
		default:
			log.Warn("Failed to refresh reminder", zap.String("feature", res.Feature.Name), zap.Error(res.Err))
		}
	}
	return results
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
