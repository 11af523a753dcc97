package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/profile-console/internal/platform/config"
	profilesvc "github.com/janisto/profile-console/internal/service/profile"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(chimiddleware.RequestIDHeader, "profile-api-test")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestLoginFetchDeleteRoundTrip(t *testing.T) {
	router := newRouter(profilesvc.NewMemoryStore())

	resp := do(t, router, http.MethodPost, "/v1/users/login",
		`{"name":"Ann Lee","profile":{"name":"Ann Lee","email":"ann@example.com"}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}

	if resp := do(t, router, http.MethodGet, "/v1/profile", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on fetch, got %d", resp.Code)
	}
	if resp := do(t, router, http.MethodDelete, "/v1/users/"+created.ID, ""); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", resp.Code)
	}
	if resp := do(t, router, http.MethodGet, "/v1/profile", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestUnknownPathReturnsProblemDetails(t *testing.T) {
	router := newRouter(profilesvc.NewMemoryStore())
	resp := do(t, router, http.MethodGet, "/missing", "")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if problem.Status != http.StatusNotFound {
		t.Fatalf("expected problem status 404, got %d", problem.Status)
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newRouter(profilesvc.NewMemoryStore())
	resp := do(t, router, http.MethodGet, "/health", "")

	if csp := resp.Header().Get("Content-Security-Policy"); csp != "frame-ancestors 'none'" {
		t.Fatalf("expected API CSP, got %q", csp)
	}
	if xfo := resp.Header().Get("X-Frame-Options"); xfo != "DENY" {
		t.Fatalf("expected X-Frame-Options DENY, got %q", xfo)
	}
}

func TestNewServiceWithoutProjectUsesMemory(t *testing.T) {
	svc, closeFn, err := newService(context.Background(), config.RemoteAPI{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := svc.(*profilesvc.MemoryStore); !ok {
		t.Fatalf("expected *MemoryStore, got %T", svc)
	}
}

func TestNewServiceBadCredentials(t *testing.T) {
	_, _, err := newService(context.Background(), config.RemoteAPI{
		ProjectID:   "demo-test-project",
		Credentials: t.TempDir() + "/missing.json",
	})
	if err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}
