package adapters

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"dashboard-reminders/internal/core/cache"
	"dashboard-reminders/internal/core/mgrclient"
	"dashboard-reminders/internal/features/reminders/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMgr is a mock implementation of ModuleLister and ModuleConfigurer
type MockMgr struct {
	mock.Mock
}

func (m *MockMgr) ListModules(ctx context.Context) ([]mgrclient.Module, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mgrclient.Module), args.Error(1)
}

func (m *MockMgr) ModuleConfig(ctx context.Context, module string) (map[string]any, error) {
	args := m.Called(ctx, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockMgr) UpdateModuleConfig(ctx context.Context, module string, values map[string]any) error {
	args := m.Called(ctx, module, values)
	return args.Error(0)
}

func TestModuleStatus_FeatureEnabled(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		modules  []mgrclient.Module
		expected bool
	}{
		{
			name:     "Enabled",
			modules:  []mgrclient.Module{{Name: "dashboard", Enabled: true}, {Name: CallHomeModule, Enabled: true}},
			expected: true,
		},
		{
			name:     "Disabled",
			modules:  []mgrclient.Module{{Name: CallHomeModule, Enabled: false}},
			expected: false,
		},
		{
			name:     "Missing",
			modules:  []mgrclient.Module{{Name: "dashboard", Enabled: true}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := new(MockMgr)
			mgr.On("ListModules", ctx).Return(tt.modules, nil).Once()

			enabled, err := NewModuleStatus(mgr, CallHomeModule).FeatureEnabled(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, enabled)
		})
	}

	t.Run("Error", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("ListModules", ctx).Return(nil, errors.New("connection refused")).Once()

		_, err := NewModuleStatus(mgr, CallHomeModule).FeatureEnabled(ctx)
		assert.Error(t, err)
	})
}

func TestTenantStatus_FeatureEnabled(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		config   map[string]any
		expected bool
	}{
		{name: "Tenant set", config: map[string]any{TenantIDOption: "tenant-42"}, expected: true},
		{name: "Tenant blank", config: map[string]any{TenantIDOption: "  "}, expected: false},
		{name: "Tenant null", config: map[string]any{TenantIDOption: nil}, expected: false},
		{name: "Tenant absent", config: map[string]any{"icn": "123"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := new(MockMgr)
			mgr.On("ModuleConfig", ctx, CallHomeModule).Return(tt.config, nil).Once()

			enabled, err := NewTenantStatus(mgr, CallHomeModule).FeatureEnabled(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, enabled)
		})
	}

	t.Run("ModuleMissing", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("ModuleConfig", ctx, CallHomeModule).
			Return(nil, &mgrclient.APIError{StatusCode: http.StatusNotFound}).Once()

		enabled, err := NewTenantStatus(mgr, CallHomeModule).FeatureEnabled(ctx)
		require.NoError(t, err)
		assert.False(t, enabled)
	})

	t.Run("Error", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("ModuleConfig", ctx, CallHomeModule).
			Return(nil, &mgrclient.APIError{StatusCode: http.StatusInternalServerError}).Once()

		_, err := NewTenantStatus(mgr, CallHomeModule).FeatureEnabled(ctx)
		assert.Error(t, err)
	})
}

func TestMgrSnoozeStore(t *testing.T) {
	ctx := context.Background()
	key := domain.CallHome.ConfigKey

	t.Run("Read", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("ModuleConfig", ctx, DashboardModule).
			Return(map[string]any{key: "Sat Jan 16 2027", "other": "x"}, nil).Once()

		token, err := NewMgrSnoozeStore(mgr, DashboardModule, key).SnoozeDeadline(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Sat Jan 16 2027", token)
	})

	t.Run("ReadUnset", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("ModuleConfig", ctx, DashboardModule).Return(map[string]any{}, nil).Once()

		token, err := NewMgrSnoozeStore(mgr, DashboardModule, key).SnoozeDeadline(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("ReadError", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("ModuleConfig", ctx, DashboardModule).Return(nil, errors.New("timeout")).Once()

		_, err := NewMgrSnoozeStore(mgr, DashboardModule, key).SnoozeDeadline(ctx)
		assert.Error(t, err)
	})

	t.Run("Write", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("UpdateModuleConfig", ctx, DashboardModule, map[string]any{key: "Sat Jan 16 2027"}).Return(nil).Once()

		err := NewMgrSnoozeStore(mgr, DashboardModule, key).SetSnoozeDeadline(ctx, "Sat Jan 16 2027")
		require.NoError(t, err)
		mgr.AssertExpectations(t)
	})

	t.Run("WriteError", func(t *testing.T) {
		mgr := new(MockMgr)
		mgr.On("UpdateModuleConfig", ctx, DashboardModule, mock.Anything).Return(errors.New("forbidden")).Once()

		err := NewMgrSnoozeStore(mgr, DashboardModule, key).SetSnoozeDeadline(ctx, "never")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dashboard.CALL_HOME_REMIND_LATER_ON")
	})
}

func TestRedisSnoozeStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "reminders")
	require.NoError(t, err)
	defer c.Close()

	store := NewRedisSnoozeStore(c, domain.StorageInsights.ConfigKey)

	token, err := store.SnoozeDeadline(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetSnoozeDeadline(ctx, "Sat Jan 16 2027"))

	token, err = store.SnoozeDeadline(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sat Jan 16 2027", token)

	stored, err := mr.Get("reminders:STORAGE_INSIGHTS_REMIND_LATER_ON")
	require.NoError(t, err)
	assert.Equal(t, "Sat Jan 16 2027", stored)

	mr.SetError("ERR simulated failure")
	_, err = store.SnoozeDeadline(ctx)
	assert.Error(t, err)
}
