package mgrclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"dashboard-reminders/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMgr is a minimal dashboard API used by the client tests.
type fakeMgr struct {
	logins      atomic.Int32
	expireFirst atomic.Bool
	lastConfig  map[string]any
	lastEnabled string
	lastTenant  string
	lastOwner   map[string]string
}

func (f *fakeMgr) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", acceptHeader)
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer token-"+string(rune('0'+f.logins.Load())) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return false
		}
		if f.expireFirst.CompareAndSwap(true, false) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return false
		}
		return true
	}

	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "admin" || creds["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
			return
		}
		n := f.logins.Add(1)
		writeJSON(w, http.StatusCreated, map[string]string{"token": "token-" + string(rune('0'+n))})
	})

	mux.HandleFunc("GET /api/mgr/module", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"name": "dashboard", "enabled": true, "always_on": false},
			{"name": "call_home_agent", "enabled": false, "always_on": false},
		})
	})

	mux.HandleFunc("GET /api/mgr/module/{name}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		if r.PathValue("name") == "missing" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Module 'missing' does not exist"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"CALL_HOME_REMIND_LATER_ON": "Sat Jan 16 2027"})
	})

	mux.HandleFunc("PUT /api/mgr/module/{name}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.lastConfig = body["config"]
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/mgr/module/{name}/enable", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.lastEnabled = r.PathValue("name")
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/call_home/download", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"report": r.URL.Query().Get("report_type")})
	})

	mux.HandleFunc("GET /api/call_home", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"si-instances": []map[string]string{
				{"company-name": r.URL.Query().Get("company_name"), "external_url": "https://si.example.com/t-1"},
			},
		})
	})

	mux.HandleFunc("PUT /api/call_home/{tenant}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.lastTenant = r.PathValue("tenant")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastOwner))
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func newTestClient(t *testing.T, f *fakeMgr, password string) *Client {
	t.Helper()

	ts := httptest.NewServer(f.handler(t))
	t.Cleanup(ts.Close)

	return New(config.MgrConfig{
		URL:            ts.URL + "/",
		Username:       "admin",
		Password:       password,
		TimeoutSeconds: 5,
	})
}

func TestClient_ListModules(t *testing.T) {
	f := &fakeMgr{}
	client := newTestClient(t, f, "secret")

	modules, err := client.ListModules(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "call_home_agent", modules[1].Name)
	assert.False(t, modules[1].Enabled)

	// The token is cached between calls.
	_, err = client.ListModules(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.logins.Load())
}

func TestClient_ModuleConfig(t *testing.T) {
	client := newTestClient(t, &fakeMgr{}, "secret")

	cfg, err := client.ModuleConfig(context.Background(), "dashboard")
	require.NoError(t, err)
	assert.Equal(t, "Sat Jan 16 2027", cfg["CALL_HOME_REMIND_LATER_ON"])
}

func TestClient_ModuleConfig_NotFound(t *testing.T) {
	client := newTestClient(t, &fakeMgr{}, "secret")

	_, err := client.ModuleConfig(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Module 'missing' does not exist", apiErr.Detail)
}

func TestClient_UpdateModuleConfig(t *testing.T) {
	f := &fakeMgr{}
	client := newTestClient(t, f, "secret")

	err := client.UpdateModuleConfig(context.Background(), "dashboard", map[string]any{
		"STORAGE_INSIGHTS_REMIND_LATER_ON": "Sat Jan 16 2027",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sat Jan 16 2027", f.lastConfig["STORAGE_INSIGHTS_REMIND_LATER_ON"])
}

func TestClient_EnableModule(t *testing.T) {
	f := &fakeMgr{}
	client := newTestClient(t, f, "secret")

	require.NoError(t, client.EnableModule(context.Background(), "call_home_agent"))
	assert.Equal(t, "call_home_agent", f.lastEnabled)
}

func TestClient_CallHomeReport(t *testing.T) {
	client := newTestClient(t, &fakeMgr{}, "secret")

	report, err := client.CallHomeReport(context.Background(), "inventory")
	require.NoError(t, err)
	assert.JSONEq(t, `{"report":"inventory"}`, string(report))
}

func TestClient_ListTenants(t *testing.T) {
	client := newTestClient(t, &fakeMgr{}, "secret")

	tenants, err := client.ListTenants(context.Background(), map[string]string{
		"ibm_id":       "ibm-123",
		"company_name": "Acme & Co",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"si-instances":[{"company-name":"Acme & Co","external_url":"https://si.example.com/t-1"}]}`, string(tenants))
}

func TestClient_SetTenant(t *testing.T) {
	f := &fakeMgr{}
	client := newTestClient(t, f, "secret")

	owner := map[string]string{"ibm_id": "ibm-123", "email": "ada@example.com"}
	require.NoError(t, client.SetTenant(context.Background(), "t-1", owner))
	assert.Equal(t, "t-1", f.lastTenant)
	assert.Equal(t, owner, f.lastOwner)
}

func TestClient_RetriesOnceOnExpiredToken(t *testing.T) {
	f := &fakeMgr{}
	client := newTestClient(t, f, "secret")

	require.NoError(t, client.Ping(context.Background()))

	f.expireFirst.Store(true)
	require.NoError(t, client.Ping(context.Background()))
	assert.EqualValues(t, 2, f.logins.Load())
}

func TestClient_BadCredentials(t *testing.T) {
	client := newTestClient(t, &fakeMgr{}, "wrong")

	_, err := client.ListModules(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Method: "GET", Path: "/api/mgr/module", StatusCode: 500}
	assert.Equal(t, "mgr: GET /api/mgr/module returned status 500", err.Error())

	err.Detail = "boom"
	assert.Equal(t, "mgr: GET /api/mgr/module returned status 500: boom", err.Error())
}
