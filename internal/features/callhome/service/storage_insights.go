package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/features/callhome/domain"
	"dashboard-reminders/internal/features/callhome/ports"
	notification "dashboard-reminders/internal/features/notifications/domain"

	"go.uber.org/zap"
)

// StorageInsightsServiceImpl implements ports.StorageInsightsService.
type StorageInsightsServiceImpl struct {
	mgr      ports.TenantManager
	callHome ports.FeatureStatus
	tenant   ports.FeatureStatus
	reminder ports.Reminder
	notifier ports.Notifier
}

// NewStorageInsightsService creates a new StorageInsightsServiceImpl. callHome
// gates the dialog, tenant reports whether a tenant is already configured and
// reminder is the Storage Insights reminder.
func NewStorageInsightsService(mgr ports.TenantManager, callHome, tenant ports.FeatureStatus, reminder ports.Reminder, notifier ports.Notifier) *StorageInsightsServiceImpl {
	return &StorageInsightsServiceImpl{
		mgr:      mgr,
		callHome: callHome,
		tenant:   tenant,
		reminder: reminder,
		notifier: notifier,
	}
}

// Tenants lists the Storage Insights tenants registered for owner.
func (s *StorageInsightsServiceImpl) Tenants(ctx context.Context, owner domain.TenantOwner) ([]domain.Tenant, error) {
	if err := s.requireCallHome(ctx); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.mgr.ListTenants(ctx, owner.Params())
	if err != nil {
		return nil, fmt.Errorf("service: failed to list tenants: %w", err)
	}
	return domain.ParseTenants(raw)
}

// OptIn points the agent at tenantID and hides the Storage Insights reminder.
func (s *StorageInsightsServiceImpl) OptIn(ctx context.Context, tenantID string, owner domain.TenantOwner) error {
	if err := s.requireCallHome(ctx); err != nil {
		return err
	}

	tenantID = strings.TrimSpace(tenantID)
	fields := domain.FieldErrors{}
	if err := owner.Validate(); err != nil && !errors.As(err, &fields) {
		return err
	}
	if tenantID == "" {
		fields["tenant_id"] = "is required"
	}
	if len(fields) > 0 {
		return fields
	}

	configured, err := s.tenant.FeatureEnabled(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to read storage insights status: %w", err)
	}

	if err := s.mgr.SetTenant(ctx, tenantID, owner.Params()); err != nil {
		return fmt.Errorf("service: failed to set tenant %s: %w", tenantID, err)
	}

	title := domain.StorageInsightsActivatedTitle
	if configured {
		title = domain.StorageInsightsUpdatedTitle
	}
	logger.Named("callhome").Info("Storage Insights tenant set",
		zap.String("tenant_id", tenantID), zap.Bool("updated", configured))

	s.notifier.Notify(ctx, notification.KindSuccess, title, "")
	s.reminder.SetVisibility(false)

	return nil
}

func (s *StorageInsightsServiceImpl) requireCallHome(ctx context.Context) error {
	enabled, err := s.callHome.FeatureEnabled(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to read call home status: %w", err)
	}
	if !enabled {
		return domain.ErrCallHomeDisabled
	}
	return nil
}
