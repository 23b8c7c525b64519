package ports

import (
	"context"
	"encoding/json"

	"dashboard-reminders/internal/core/mgrclient"
	"dashboard-reminders/internal/features/callhome/domain"
	notification "dashboard-reminders/internal/features/notifications/domain"
)

// CallHomeService drives the Call Home configuration dialog.
// This is the Primary Port.
type CallHomeService interface {
	Status(ctx context.Context) (bool, error)
	Activate(ctx context.Context, info domain.CustomerInfo) error
	Deactivate(ctx context.Context) error
	Info(ctx context.Context) (json.RawMessage, error)
	Report(ctx context.Context, reportType string) (json.RawMessage, error)
}

// StorageInsightsService drives the Storage Insights opt-in dialog.
// This is the Primary Port.
type StorageInsightsService interface {
	Tenants(ctx context.Context, owner domain.TenantOwner) ([]domain.Tenant, error)
	OptIn(ctx context.Context, tenantID string, owner domain.TenantOwner) error
}

// Manager is the part of the manager API the dialog needs.
// This is a Secondary Port (Driven Port).
type Manager interface {
	ListModules(ctx context.Context) ([]mgrclient.Module, error)
	UpdateModuleConfig(ctx context.Context, module string, values map[string]any) error
	EnableModule(ctx context.Context, module string) error
	DisableModule(ctx context.Context, module string) error
	CallHomeInfo(ctx context.Context) (json.RawMessage, error)
	CallHomeReport(ctx context.Context, reportType string) (json.RawMessage, error)
}

// TenantManager is the part of the manager API the opt-in dialog needs.
// This is a Secondary Port (Driven Port).
type TenantManager interface {
	ListTenants(ctx context.Context, owner map[string]string) (json.RawMessage, error)
	SetTenant(ctx context.Context, tenantID string, owner map[string]string) error
}

// FeatureStatus reports whether a feature is active.
type FeatureStatus interface {
	FeatureEnabled(ctx context.Context) (bool, error)
}

// Reminder is a feature reminder, hidden after the feature was configured.
type Reminder interface {
	SetVisibility(visible bool)
}

// Notifier surfaces a message to the operator.
type Notifier interface {
	Notify(ctx context.Context, kind notification.Kind, title, body string)
}
