package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"dashboard-reminders/internal/core/config"
	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/features/reminders/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboard serves the manager endpoints the reminders read.
type fakeDashboard struct {
	mu        sync.Mutex
	enabled   bool
	tenant    string
	dashboard map[string]any
}

func (f *fakeDashboard) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"token": "t"})
	})
	mux.HandleFunc("GET /api/mgr/module", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, []map[string]any{{"name": "call_home_agent", "enabled": f.enabled}})
	})
	mux.HandleFunc("GET /api/mgr/module/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.PathValue("name") == "call_home_agent" {
			writeJSON(w, map[string]any{"owner_tenant_id": f.tenant})
			return
		}
		writeJSON(w, f.dashboard)
	})
	mux.HandleFunc("PUT /api/call_home/{tenant}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.tenant = r.PathValue("tenant")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("PUT /api/mgr/module/{name}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		defer f.mu.Unlock()
		for k, v := range body["config"] {
			f.dashboard[k] = v
		}
	})

	return mux
}

func newConfig(t *testing.T, flavor, backend string) *config.AppConfig {
	t.Helper()

	return newConfigFor(t, &fakeDashboard{dashboard: map[string]any{
		"STORAGE_INSIGHTS_REMIND_LATER_ON": "2099-01-01",
	}}, flavor, backend)
}

func newConfigFor(t *testing.T, dash *fakeDashboard, flavor, backend string) *config.AppConfig {
	t.Helper()

	ts := httptest.NewServer(dash.handler(t))
	t.Cleanup(ts.Close)

	mr := miniredis.RunT(t)

	t.Setenv("MGR_URL", ts.URL)
	t.Setenv("MGR_USERNAME", "admin")
	t.Setenv("MGR_PASSWORD", "secret")
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	t.Setenv("BUILD_FLAVOR", flavor)
	t.Setenv("SNOOZE_BACKEND", backend)
	t.Setenv("REFRESH_SCHEDULE", "off")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestNew_CephFlavor(t *testing.T) {
	logger.Init("development", "error")
	a, err := New(context.Background(), newConfig(t, "ceph", config.SnoozeBackendMgr))
	require.NoError(t, err)
	defer a.Close()

	all := a.Registry().All()
	require.Len(t, all, 1)
	assert.Equal(t, domain.CallHome, all[0].Feature())
	require.Len(t, a.Banners(), 1)
	assert.False(t, a.Banners()[0].HasPrerequisite())
	assert.Nil(t, a.storageInsights)

	results := a.Check(context.Background())
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Visible)
}

func TestNew_IBMFlavor(t *testing.T) {
	logger.Init("development", "error")
	a, err := New(context.Background(), newConfig(t, "ibm", config.SnoozeBackendMgr))
	require.NoError(t, err)
	defer a.Close()

	banners := a.Banners()
	require.Len(t, banners, 2)
	assert.True(t, banners[1].HasPrerequisite())
	assert.NotNil(t, a.storageInsights)

	results := a.Check(context.Background())
	require.Len(t, results, 2)
	assert.True(t, results[0].Visible)
	// The Storage Insights deadline is far in the future.
	assert.False(t, results[1].Visible)
	assert.False(t, Failed(results))
}

func TestNew_RedisBackendDismiss(t *testing.T) {
	logger.Init("development", "error")
	a, err := New(context.Background(), newConfig(t, "ceph", config.SnoozeBackendRedis))
	require.NoError(t, err)
	defer a.Close()

	svc, err := a.Registry().Get(domain.CallHome.Name)
	require.NoError(t, err)

	_, err = svc.Dismiss(context.Background())
	require.NoError(t, err)

	results := a.Check(context.Background())
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Visible)
}

func TestNew_RedisBackendRequiresRedis(t *testing.T) {
	logger.Init("development", "error")
	cfg := newConfig(t, "ceph", config.SnoozeBackendRedis)
	cfg.Redis.URL = "redis://127.0.0.1:1/0"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_FallsBackToMemoryNotifications(t *testing.T) {
	logger.Init("development", "error")
	cfg := newConfig(t, "ceph", config.SnoozeBackendMgr)
	cfg.Redis.URL = "redis://127.0.0.1:1/0"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, a.cache)
	assert.NoError(t, a.Close())
}

func TestApp_NewServer(t *testing.T) {
	logger.Init("development", "error")
	a, err := New(context.Background(), newConfig(t, "ceph", config.SnoozeBackendMgr))
	require.NoError(t, err)
	defer a.Close()

	srv := a.NewServer()

	resp, err := srv.App.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.App.Test(httptest.NewRequest("GET", "/reminders/call_home", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.App.Test(httptest.NewRequest("GET", "/notifications", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Storage Insights routes only exist in the ibm flavor.
	resp, err = srv.App.Test(httptest.NewRequest("GET", "/call-home/tenants", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApp_StorageInsightsOptInHidesReminder(t *testing.T) {
	logger.Init("development", "error")
	dash := &fakeDashboard{enabled: true, dashboard: map[string]any{}}
	a, err := New(context.Background(), newConfigFor(t, dash, "ibm", config.SnoozeBackendMgr))
	require.NoError(t, err)
	defer a.Close()

	insights, err := a.Registry().Get(domain.StorageInsights.Name)
	require.NoError(t, err)
	insights.SetVisibility(true)

	body := `{"tenant_id":"t-1","ibm_id":"ibm-123","company_name":"Acme","first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := httptest.NewRequest("PUT", "/call-home/tenant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.NewServer().App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.False(t, insights.CurrentlyVisible())
	dash.mu.Lock()
	assert.Equal(t, "t-1", dash.tenant)
	dash.mu.Unlock()

	history, err := a.notifications.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, "Activated IBM Storage Insights", history[0].Title)
}
