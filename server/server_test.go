package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/go-hospital-admin/internal/config"
	"github.com/carebridge/go-hospital-admin/kv"
	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/server"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/users"
)

const (
	seedDoctorEmail    = "dr.mehta@jindalivf.com"
	seedDoctorPassword = "Doctor@123"
)

type serverFixture struct {
	ts      *httptest.Server
	manager *session.Manager
}

func setupServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	cfg := &config.Config{
		Port:     "0",
		Env:      "test",
		JWTS:     "test-secret",
		TokenTTL: time.Hour,
		IdleTTL:  time.Hour,
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	dir := session.Directory{
		Users:   users.NewInMemoryRepo(),
		Tenants: tenants.NewInMemoryRepo(),
	}
	registry := masters.NewRegistry()
	require.NoError(t, server.Bootstrap(context.Background(), dir, registry))

	manager := session.NewManager(dir, kv.NewMemory())
	t.Cleanup(manager.Close)

	ts := httptest.NewServer(server.New(cfg, manager, registry, zerolog.Nop()))
	t.Cleanup(ts.Close)

	return &serverFixture{ts: ts, manager: manager}
}

func (f *serverFixture) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, f.ts.URL+path, payload)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type loginResult struct {
	Token string `json:"token"`
	session.State

	// SID is the device session identifier minted in the login
	// response's cookie; it matches the token's sid claim.
	SID string `json:"-"`
}

func (f *serverFixture) login(t *testing.T, email, password string) loginResult {
	t.Helper()

	resp := f.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == server.SessionCookie {
			sid = c.Value
		}
	}
	result := decodeBody[loginResult](t, resp)
	result.SID = sid
	return result
}

func TestHealthEndpoint(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.request(t, http.MethodGet, "/healthz", "", nil)
	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}

func TestLoginSuccessReturnsTokenAndState(t *testing.T) {
	f := setupServerFixture(t)

	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)
	require.NotEmpty(t, result.Token)
	require.True(t, result.IsAuthenticated)
	require.Equal(t, "jindal-ivf", result.Tenant.ID)
	require.Equal(t, "branch-delhi-main", result.SelectedBranch.ID, "admin without home branch lands on the first branch")
}

func TestLoginInvalidCredentialsAreIndistinguishable(t *testing.T) {
	f := setupServerFixture(t)

	cases := map[string]map[string]string{
		"unknown email":  {"email": "nobody@jindalivf.com", "password": "Admin@123"},
		"wrong password": {"email": server.SeedAdminEmail, "password": "wrong"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := f.request(t, http.MethodPost, "/api/v1/auth/login", "", body)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			payload := decodeBody[map[string]string](t, resp)
			require.Equal(t, "invalid email or password", payload["error"])
		})
	}
}

func TestLoginValidation(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "not-an-email", "password": "x",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionReflectsLogin(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodGet, "/api/v1/session", result.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeBody[session.State](t, resp)
	require.True(t, state.IsAuthenticated)
	require.Equal(t, server.SeedAdminEmail, state.User.Email)
}

func TestSessionViaCookie(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": server.SeedAdminEmail, "password": server.SeedAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var sid *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == server.SessionCookie {
			sid = c
		}
	}
	require.NotNil(t, sid, "login must set the session cookie")

	req, err := http.NewRequest(http.MethodGet, f.ts.URL+"/api/v1/session", nil)
	require.NoError(t, err)
	req.AddCookie(sid)
	cookieResp, err := f.ts.Client().Do(req)
	require.NoError(t, err)
	state := decodeBody[session.State](t, cookieResp)
	require.True(t, state.IsAuthenticated, "cookie must resolve to the same session as the bearer")
}

func TestSelectBranch(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodPut, "/api/v1/session/branch", result.Token, map[string]string{
		"branchId": "branch-gurgaon",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeBody[session.State](t, resp)
	require.Equal(t, "branch-gurgaon", state.SelectedBranch.ID)
	require.Equal(t, "Jindal IVF Gurgaon", state.SelectedBranch.Name, "selection must carry the tenant's canonical record")
}

func TestSelectForeignBranch(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodPut, "/api/v1/session/branch", result.Token, map[string]string{
		"branchId": "branch-citycare-central",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateThemeAndStylesheet(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodPatch, "/api/v1/tenant/theme", result.Token, map[string]string{
		"primaryColor": "#123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decodeBody[session.State](t, resp)
	require.Equal(t, "#123456", state.Tenant.Theme.PrimaryColor)
	require.Equal(t, "Jindal IVF", state.Tenant.Theme.BrandName, "patch must not wipe unspecified fields")

	css := f.request(t, http.MethodGet, "/theme.css", result.Token, nil)
	defer css.Body.Close()
	require.Equal(t, http.StatusOK, css.StatusCode)
	require.Equal(t, "text/css; charset=utf-8", css.Header.Get("Content-Type"))
	raw, err := io.ReadAll(css.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "--primary: #123456;")
}

func TestBrandingFollowsTenantTheme(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodGet, "/api/v1/branding", result.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	branding := decodeBody[map[string]string](t, resp)
	require.Equal(t, "Jindal IVF - Hospital Management System", branding["title"])
	require.Equal(t, "/tenants/jindal-ivf/favicon.ico", branding["favicon"])
}

func TestDashboardRequiresAuthentication(t *testing.T) {
	f := setupServerFixture(t)

	resp := f.request(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDashboardOverview(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodGet, "/api/v1/dashboard", result.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := decodeBody[map[string]any](t, resp)
	require.NotEmpty(t, overview["stats"])
}

func TestLogoutEndsTheSession(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	resp := f.request(t, http.MethodPost, "/api/v1/auth/logout", result.Token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The bearer still names the session, but its snapshots are gone.
	after := f.request(t, http.MethodGet, "/api/v1/session", result.Token, nil)
	state := decodeBody[session.State](t, after)
	require.False(t, state.IsAuthenticated)
}

func TestSessionSurvivesStoreEviction(t *testing.T) {
	f := setupServerFixture(t)
	result := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	// Simulate the idle janitor evicting the resident store.
	require.Equal(t, 1, f.manager.Len())
	f.manager.Drop(result.SID)
	require.Equal(t, 0, f.manager.Len())

	resp := f.request(t, http.MethodGet, "/api/v1/session", result.Token, nil)
	state := decodeBody[session.State](t, resp)
	require.True(t, state.IsAuthenticated, "an evicted session must be rebuilt from its snapshots")
	require.Equal(t, server.SeedAdminEmail, state.User.Email)
}

func TestMastersRBAC(t *testing.T) {
	f := setupServerFixture(t)

	admin := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)
	doctor := f.login(t, seedDoctorEmail, seedDoctorPassword)
	require.Equal(t, "branch-gurgaon", doctor.SelectedBranch.ID, "doctor lands on their home branch")

	listResp := f.request(t, http.MethodGet, "/api/v1/masters/companies", admin.Token, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	companies := decodeBody[[]masters.Company](t, listResp)
	require.NotEmpty(t, companies)

	forbidden := f.request(t, http.MethodGet, "/api/v1/masters/companies", doctor.Token, nil)
	forbidden.Body.Close()
	require.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	denied := f.request(t, http.MethodPost, "/api/v1/masters/roles", doctor.Token, map[string]string{
		"name": "Smuggled", "code": "SMG",
	})
	denied.Body.Close()
	require.Equal(t, http.StatusForbidden, denied.StatusCode)
}

func TestMastersCRUDLifecycle(t *testing.T) {
	f := setupServerFixture(t)
	admin := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)

	created := f.request(t, http.MethodPost, "/api/v1/masters/buildings", admin.Token, map[string]any{
		"name": "Annex Block", "code": "ANX001", "totalFloors": 3,
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	building := decodeBody[masters.Building](t, created)
	require.NotEmpty(t, building.ID)

	updated := f.request(t, http.MethodPut, "/api/v1/masters/buildings/"+building.ID, admin.Token, map[string]any{
		"name": "Annex Block East", "code": "ANX001",
	})
	require.Equal(t, http.StatusOK, updated.StatusCode)
	renamed := decodeBody[masters.Building](t, updated)
	require.Equal(t, building.ID, renamed.ID)
	require.Equal(t, "Annex Block East", renamed.Name)

	invalid := f.request(t, http.MethodPost, "/api/v1/masters/buildings", admin.Token, map[string]any{
		"name": "No Code",
	})
	invalid.Body.Close()
	require.Equal(t, http.StatusBadRequest, invalid.StatusCode, "missing required code must fail validation")

	deleted := f.request(t, http.MethodDelete, "/api/v1/masters/buildings/"+building.ID, admin.Token, nil)
	deleted.Body.Close()
	require.Equal(t, http.StatusNoContent, deleted.StatusCode)

	missing := f.request(t, http.MethodGet, "/api/v1/masters/buildings/"+building.ID, admin.Token, nil)
	missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestTenantIsolationAcrossSessions(t *testing.T) {
	f := setupServerFixture(t)

	jindal := f.login(t, server.SeedAdminEmail, server.SeedAdminPassword)
	citycare := f.login(t, "admin@citycare.example", "Admin@123")

	jindalState := decodeBody[session.State](t, f.request(t, http.MethodGet, "/api/v1/session", jindal.Token, nil))
	citycareState := decodeBody[session.State](t, f.request(t, http.MethodGet, "/api/v1/session", citycare.Token, nil))

	require.Equal(t, "jindal-ivf", jindalState.Tenant.ID)
	require.Equal(t, "citycare", citycareState.Tenant.ID)
	require.Equal(t, "branch-citycare-central", citycareState.SelectedBranch.ID)
}
