package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/core/mgrclient"
	"dashboard-reminders/internal/features/callhome/domain"
	"dashboard-reminders/internal/features/callhome/ports"
	notification "dashboard-reminders/internal/features/notifications/domain"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Module is the manager module running the call home agent.
const Module = "call_home_agent"

// ErrReconnectTimeout is returned when the manager does not answer again
// after the module was toggled.
var ErrReconnectTimeout = errors.New("manager did not reconnect in time")

// CallHomeServiceImpl implements ports.CallHomeService.
type CallHomeServiceImpl struct {
	mgr      ports.Manager
	reminder ports.Reminder
	notifier ports.Notifier

	pollInterval     time.Duration
	reconnectTimeout time.Duration
}

// NewCallHomeService creates a new CallHomeServiceImpl.
func NewCallHomeService(mgr ports.Manager, reminder ports.Reminder, notifier ports.Notifier, pollInterval, reconnectTimeout time.Duration) *CallHomeServiceImpl {
	return &CallHomeServiceImpl{
		mgr:              mgr,
		reminder:         reminder,
		notifier:         notifier,
		pollInterval:     pollInterval,
		reconnectTimeout: reconnectTimeout,
	}
}

// Status reports whether the call home agent module is enabled.
func (s *CallHomeServiceImpl) Status(ctx context.Context) (bool, error) {
	modules, err := s.mgr.ListModules(ctx)
	if err != nil {
		return false, fmt.Errorf("service: failed to list manager modules: %w", err)
	}
	for _, m := range modules {
		if m.Name == Module {
			return m.Enabled, nil
		}
	}
	return false, nil
}

// Activate stores the customer details, enables the agent and waits for the
// manager to come back. The Call Home reminder is hidden afterwards.
func (s *CallHomeServiceImpl) Activate(ctx context.Context, info domain.CustomerInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	if err := s.mgr.UpdateModuleConfig(ctx, Module, info.ModuleOptions()); err != nil {
		return fmt.Errorf("service: failed to store customer information: %w", err)
	}

	if err := s.toggle(ctx, true); err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.KindSuccess, domain.ActivatedTitle, "")
	s.reminder.SetVisibility(false)

	return nil
}

// Deactivate disables the agent and waits for the manager to come back.
func (s *CallHomeServiceImpl) Deactivate(ctx context.Context) error {
	if err := s.toggle(ctx, false); err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.KindSuccess, domain.DeactivatedTitle, "")
	return nil
}

// Info returns the customer details known to the agent.
func (s *CallHomeServiceImpl) Info(ctx context.Context) (json.RawMessage, error) {
	info, err := s.mgr.CallHomeInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get call home info: %w", err)
	}
	return info, nil
}

// Report returns one agent report.
func (s *CallHomeServiceImpl) Report(ctx context.Context, reportType string) (json.RawMessage, error) {
	rt, err := domain.ParseReportType(reportType)
	if err != nil {
		return nil, err
	}

	report, err := s.mgr.CallHomeReport(ctx, string(rt))
	if err != nil {
		return nil, fmt.Errorf("service: failed to download %s report: %w", rt, err)
	}
	return report, nil
}

// toggle enables or disables the module. Toggling restarts the manager, so
// a dropped connection or 5xx answer means it is reconnecting.
func (s *CallHomeServiceImpl) toggle(ctx context.Context, enable bool) error {
	log := logger.Named("callhome").With(zap.Bool("enable", enable))

	var err error
	if enable {
		err = s.mgr.EnableModule(ctx, Module)
	} else {
		err = s.mgr.DisableModule(ctx, Module)
	}

	var apiErr *mgrclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
		return fmt.Errorf("service: failed to toggle %s: %w", Module, err)
	}
	if err != nil {
		log.Info("Manager is reconnecting", zap.Error(err))
	}

	return s.waitUntilReconnected(ctx, log)
}

func (s *CallHomeServiceImpl) waitUntilReconnected(ctx context.Context, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, s.reconnectTimeout)
	defer cancel()

	select {
	case <-time.After(s.pollInterval):
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrReconnectTimeout, ctx.Err())
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(s.pollInterval), ctx)
	err := backoff.RetryNotify(func() error {
		_, err := s.mgr.ListModules(ctx)
		return err
	}, policy, func(err error, next time.Duration) {
		log.Debug("Waiting for manager", zap.Duration("retry_in", next), zap.Error(err))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReconnectTimeout, err)
	}

	log.Info("Manager reconnected")
	return nil
}
