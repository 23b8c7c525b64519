package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dashboard-reminders/internal/core/mgrclient"
)

const (
	// CallHomeModule is the manager module behind both reminders.
	CallHomeModule = "call_home_agent"
	// DashboardModule stores the snooze deadlines.
	DashboardModule = "dashboard"
	// TenantIDOption is set once the cluster is registered with Storage Insights.
	TenantIDOption = "owner_tenant_id"
)

// ModuleLister lists manager modules.
type ModuleLister interface {
	ListModules(ctx context.Context) ([]mgrclient.Module, error)
}

// ModuleConfigurer reads and writes manager module options.
type ModuleConfigurer interface {
	ModuleConfig(ctx context.Context, module string) (map[string]any, error)
	UpdateModuleConfig(ctx context.Context, module string, values map[string]any) error
}

// ModuleStatus reports a feature as enabled when its manager module is enabled.
type ModuleStatus struct {
	mgr    ModuleLister
	module string
}

// NewModuleStatus creates a new ModuleStatus for module.
func NewModuleStatus(mgr ModuleLister, module string) *ModuleStatus {
	return &ModuleStatus{mgr: mgr, module: module}
}

// FeatureEnabled implements ports.StatusSource.
func (s *ModuleStatus) FeatureEnabled(ctx context.Context) (bool, error) {
	modules, err := s.mgr.ListModules(ctx)
	if err != nil {
		return false, fmt.Errorf("adapters: failed to list manager modules: %w", err)
	}

	for _, m := range modules {
		if m.Name == s.module {
			return m.Enabled, nil
		}
	}
	return false, nil
}

// TenantStatus reports Storage Insights as enabled when the call home agent
// carries an owner tenant id.
type TenantStatus struct {
	mgr    ModuleConfigurer
	module string
}

// NewTenantStatus creates a new TenantStatus reading module's options.
func NewTenantStatus(mgr ModuleConfigurer, module string) *TenantStatus {
	return &TenantStatus{mgr: mgr, module: module}
}

// FeatureEnabled implements ports.StatusSource. A missing module counts as not enabled.
func (s *TenantStatus) FeatureEnabled(ctx context.Context) (bool, error) {
	cfg, err := s.mgr.ModuleConfig(ctx, s.module)
	if err != nil {
		var apiErr *mgrclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("adapters: failed to read %s config: %w", s.module, err)
	}

	return optionString(cfg, TenantIDOption) != "", nil
}

// MgrSnoozeStore keeps a snooze deadline as an option of the dashboard module.
type MgrSnoozeStore struct {
	mgr    ModuleConfigurer
	module string
	key    string
}

// NewMgrSnoozeStore creates a store for the option key of module.
func NewMgrSnoozeStore(mgr ModuleConfigurer, module, key string) *MgrSnoozeStore {
	return &MgrSnoozeStore{mgr: mgr, module: module, key: key}
}

// SnoozeDeadline implements ports.SnoozeStore.
func (s *MgrSnoozeStore) SnoozeDeadline(ctx context.Context) (string, error) {
	cfg, err := s.mgr.ModuleConfig(ctx, s.module)
	if err != nil {
		return "", fmt.Errorf("adapters: failed to read %s config: %w", s.module, err)
	}
	return optionString(cfg, s.key), nil
}

// SetSnoozeDeadline implements ports.SnoozeStore.
func (s *MgrSnoozeStore) SetSnoozeDeadline(ctx context.Context, token string) error {
	if err := s.mgr.UpdateModuleConfig(ctx, s.module, map[string]any{s.key: token}); err != nil {
		return fmt.Errorf("adapters: failed to write %s.%s: %w", s.module, s.key, err)
	}
	return nil
}

func optionString(cfg map[string]any, key string) string {
	v, ok := cfg[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
