package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/janisto/profile-console/internal/cache"
	applog "github.com/janisto/profile-console/internal/platform/logging"
	appmiddleware "github.com/janisto/profile-console/internal/platform/middleware"
	"github.com/janisto/profile-console/internal/platform/respond"
	profilesvc "github.com/janisto/profile-console/internal/service/profile"
	"github.com/janisto/profile-console/internal/service/remote"
	"github.com/janisto/profile-console/internal/store"
)

func newRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	return router
}

func TestRegisterConsoleUnderPrefix(t *testing.T) {
	s := store.New(remote.NewMockService(nil), cache.New(afero.NewMemMapFs(), "/cache"))
	s.Init(context.Background())

	router := newRouter()
	router.Route("/v1", func(r chi.Router) {
		RegisterConsole(NewAPI(r, "RoutesTest", "test", "/v1"), s)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "routes-state")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterProfileAPICBOR(t *testing.T) {
	router := newRouter()
	api := NewAPI(router, "RoutesTest", "test", "")
	RegisterProfileAPI(api, profilesvc.NewMemoryStore())

	body, err := cbor.Marshal(map[string]any{
		"name":    "Ann Lee",
		"profile": map[string]any{"name": "Ann Lee", "email": "ann@example.com"},
	})
	if err != nil {
		t.Fatalf("cbor marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/cbor")
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %s", ct)
	}

	var out map[string]any
	if err := cbor.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if out["name"] != "Ann Lee" {
		t.Errorf("expected name Ann Lee, got %v", out["name"])
	}
}

func TestNewAPIAdvertisesCBOR(t *testing.T) {
	api := NewAPI(newRouter(), "RoutesTest", "test", "/v1")
	RegisterProfileAPI(api, profilesvc.NewMemoryStore())

	op := api.OpenAPI().Paths["/users/login"].Post
	if op == nil {
		t.Fatal("expected login operation")
	}
	if _, ok := op.RequestBody.Content["application/cbor"]; !ok {
		t.Error("expected CBOR request content")
	}
	if _, ok := op.Responses["200"].Content["application/cbor"]; !ok {
		t.Error("expected CBOR response content")
	}
	if servers := api.OpenAPI().Servers; len(servers) != 1 || servers[0].URL != "/v1" {
		t.Errorf("expected /v1 server, got %+v", servers)
	}
}
