package mgrclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"dashboard-reminders/internal/core/config"
	"dashboard-reminders/internal/core/httpclient"

	"github.com/go-resty/resty/v2"
)

const (
	// acceptHeader pins the dashboard REST API version.
	acceptHeader = "application/vnd.ceph.api.v1.0+json"

	authPath   = "/api/auth"
	modulePath = "/api/mgr/module"
	callHome   = "/api/call_home"
)

// ErrUnauthorized is returned when the dashboard rejects the configured credentials.
var ErrUnauthorized = errors.New("mgr: unauthorized")

// APIError is a non-2xx answer from the dashboard API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("mgr: %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("mgr: %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
}

// Module is one entry of the manager module list.
type Module struct {
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	AlwaysOn bool   `json:"always_on"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Client talks to the Ceph dashboard REST API on behalf of the reminder service.
type Client struct {
	http     *resty.Client
	username string
	password string

	mu    sync.Mutex
	token string
}

// New creates a Client for the given manager configuration.
func New(cfg config.MgrConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTransport(httpclient.NewTransport("mgr", cfg.InsecureSkipVerify)).
		SetTimeout(timeout).
		SetHeader("Accept", acceptHeader).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:     rc,
		username: cfg.Username,
		password: cfg.Password,
	}
}

// ListModules returns every manager module with its enabled flag.
func (c *Client) ListModules(ctx context.Context) ([]Module, error) {
	var modules []Module
	if err := c.do(ctx, http.MethodGet, modulePath, nil, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// ModuleConfig returns the option values of a manager module.
func (c *Client) ModuleConfig(ctx context.Context, module string) (map[string]any, error) {
	cfg := map[string]any{}
	if err := c.do(ctx, http.MethodGet, modulePath+"/"+url.PathEscape(module), nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateModuleConfig writes the given option values of a manager module.
func (c *Client) UpdateModuleConfig(ctx context.Context, module string, values map[string]any) error {
	body := map[string]any{"config": values}
	return c.do(ctx, http.MethodPut, modulePath+"/"+url.PathEscape(module), body, nil)
}

// EnableModule enables a manager module. The manager usually restarts afterwards.
func (c *Client) EnableModule(ctx context.Context, module string) error {
	return c.do(ctx, http.MethodPost, modulePath+"/"+url.PathEscape(module)+"/enable", nil, nil)
}

// DisableModule disables a manager module. The manager usually restarts afterwards.
func (c *Client) DisableModule(ctx context.Context, module string) error {
	return c.do(ctx, http.MethodPost, modulePath+"/"+url.PathEscape(module)+"/disable", nil, nil)
}

// CallHomeInfo returns the customer and tenant details known to the call home agent.
func (c *Client) CallHomeInfo(ctx context.Context) (json.RawMessage, error) {
	var info json.RawMessage
	if err := c.do(ctx, http.MethodGet, callHome+"/info", nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// CallHomeReport returns a call home report of the given type as raw JSON.
func (c *Client) CallHomeReport(ctx context.Context, reportType string) (json.RawMessage, error) {
	var report json.RawMessage
	path := callHome + "/download?report_type=" + url.QueryEscape(reportType)
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListTenants returns the Storage Insights tenants of the given owner as raw JSON.
func (c *Client) ListTenants(ctx context.Context, owner map[string]string) (json.RawMessage, error) {
	query := url.Values{}
	for k, v := range owner {
		query.Set(k, v)
	}

	var tenants json.RawMessage
	if err := c.do(ctx, http.MethodGet, callHome+"?"+query.Encode(), nil, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// SetTenant makes the call home agent report to the given Storage Insights tenant.
func (c *Client) SetTenant(ctx context.Context, tenantID string, owner map[string]string) error {
	return c.do(ctx, http.MethodPut, callHome+"/"+url.PathEscape(tenantID), owner, nil)
}

// Ping verifies that the manager answers authenticated requests.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListModules(ctx)
	return err
}

// do executes an authenticated request. A 401 drops the cached token and the
// request is retried once with a fresh one.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	for attempt := 0; ; attempt++ {
		token, err := c.authToken(ctx)
		if err != nil {
			return err
		}

		req := c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetError(&errorBody{})
		if body != nil {
			req.SetBody(body)
		}
		if result != nil {
			req.SetResult(result)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return fmt.Errorf("mgr: %s %s: %w", method, path, err)
		}

		if resp.StatusCode() == http.StatusUnauthorized && attempt == 0 {
			c.dropToken(token)
			continue
		}

		if resp.IsError() {
			return newAPIError(method, path, resp)
		}

		return nil
	}
}

func (c *Client) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	var auth authResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": c.username, "password": c.password}).
		SetResult(&auth).
		SetError(&errorBody{}).
		Post(authPath)
	if err != nil {
		return "", fmt.Errorf("mgr: authenticate: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return "", ErrUnauthorized
	}
	if resp.IsError() {
		return "", newAPIError(http.MethodPost, authPath, resp)
	}
	if auth.Token == "" {
		return "", errors.New("mgr: authenticate: empty token in response")
	}

	c.token = auth.Token
	return c.token, nil
}

// dropToken forgets token unless another request already replaced it.
func (c *Client) dropToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == token {
		c.token = ""
	}
}

func newAPIError(method, path string, resp *resty.Response) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode(),
	}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
