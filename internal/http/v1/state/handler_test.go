package state

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/janisto/profile-console/internal/cache"
	applog "github.com/janisto/profile-console/internal/platform/logging"
	appmiddleware "github.com/janisto/profile-console/internal/platform/middleware"
	"github.com/janisto/profile-console/internal/platform/respond"
	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/service/remote"
	"github.com/janisto/profile-console/internal/store"
)

func newTestRouter(t *testing.T, svc remote.Service, cached *profile.Profile) (chi.Router, *store.Store) {
	t.Helper()
	c := cache.New(afero.NewMemMapFs(), "/cache")
	if cached != nil {
		_ = c.Save(context.Background(), cached)
	}
	s := store.New(svc, c)
	s.Init(context.Background())

	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("StateTest", "test"))
	Register(api, s)
	return router, s
}

func ann() *profile.Profile {
	return &profile.Profile{ID: "u1", Name: "Ann Lee", Email: "ann@x.com"}
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeResult(t *testing.T, resp *httptest.ResponseRecorder) OperationResult {
	t.Helper()
	var out OperationResult
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json unmarshal: %v (%s)", err, resp.Body.String())
	}
	return out
}

func TestGetState(t *testing.T) {
	router, _ := newTestRouter(t, remote.NewMockService(nil), ann())

	resp := serve(router, http.MethodGet, "/state", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var st State
	if err := json.Unmarshal(resp.Body.Bytes(), &st); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if st.Data == nil || st.Data.ID != "u1" {
		t.Errorf("expected cached profile, got %+v", st.Data)
	}
	if st.Loading || st.Error != nil {
		t.Errorf("unexpected state: %+v", st)
	}
}

func TestGetStateEmpty(t *testing.T) {
	router, _ := newTestRouter(t, remote.NewMockService(nil), nil)

	resp := serve(router, http.MethodGet, "/state", "")
	if !strings.Contains(resp.Body.String(), `"data":null`) {
		t.Errorf("expected null data, got %s", resp.Body.String())
	}
}

func TestSaveProfile(t *testing.T) {
	router, s := newTestRouter(t, remote.NewMockService(nil), nil)

	resp := serve(router, http.MethodPost, "/profile", `{"name":" Ann Lee ","email":"ann@x.com","age":30}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decodeResult(t, resp)
	if !out.Success || out.Profile == nil || out.Profile.ID == "" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out.Profile.Name != "Ann Lee" {
		t.Errorf("expected trimmed name, got %q", out.Profile.Name)
	}
	if out.Profile.Age == nil || *out.Profile.Age != 30 {
		t.Errorf("expected age 30, got %v", out.Profile.Age)
	}
	if !s.Snapshot().HasProfile() {
		t.Error("expected store to hold the profile")
	}
}

func TestSaveProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		loc     string
	}{
		{"short name", `{"name":"Al","email":"ann@x.com"}`, profile.MsgNameTooShort, "body.name"},
		{"bad email", `{"name":"Ann Lee","email":"nope"}`, profile.MsgEmailInvalid, "body.email"},
		{"too young", `{"name":"Ann Lee","email":"ann@x.com","age":12}`, profile.MsgAgeTooYoung, "body.age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := remote.NewMockService(nil)
			router, _ := newTestRouter(t, svc, nil)

			resp := serve(router, http.MethodPost, "/profile", tt.body)
			if resp.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
			}
			var problem huma.ErrorModel
			if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
				t.Fatalf("json unmarshal: %v", err)
			}
			if problem.Detail != tt.message {
				t.Errorf("expected detail %q, got %q", tt.message, problem.Detail)
			}
			if len(problem.Errors) != 1 || problem.Errors[0].Location != tt.loc {
				t.Errorf("expected error location %s, got %+v", tt.loc, problem.Errors)
			}
			if save, _, _ := svc.Calls(); save != 0 {
				t.Errorf("expected no remote call, got %d", save)
			}
		})
	}
}

func TestSaveProfileRemoteFailure(t *testing.T) {
	svc := remote.NewMockService(nil)
	svc.OnCreateOrUpdate = func(context.Context, string, *profile.Profile) (*profile.Profile, error) {
		return nil, errors.New("network down")
	}
	router, _ := newTestRouter(t, svc, nil)

	resp := serve(router, http.MethodPost, "/profile", `{"name":"Ann Lee","email":"ann@x.com"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decodeResult(t, resp)
	if out.Success || out.Error == nil || out.Error.Message != "network down" || out.Error.Kind != "transport" {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestLoadProfile(t *testing.T) {
	router, _ := newTestRouter(t, remote.NewMockService(ann()), nil)

	resp := serve(router, http.MethodPost, "/profile/load", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decodeResult(t, resp)
	if !out.Success || out.Profile == nil || out.Profile.ID != "u1" {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestLoadProfileNotFound(t *testing.T) {
	router, s := newTestRouter(t, remote.NewMockService(nil), nil)

	resp := serve(router, http.MethodPost, "/profile/load", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decodeResult(t, resp)
	if out.Error == nil || out.Error.Message != store.MsgNoProfile || out.Error.Kind != "not_found" {
		t.Errorf("unexpected result: %+v", out)
	}
	if s.Snapshot().Error != nil {
		t.Error("not found must not set the shared error")
	}
}

func TestDeleteProfile(t *testing.T) {
	router, s := newTestRouter(t, remote.NewMockService(ann()), ann())

	resp := serve(router, http.MethodDelete, "/profile/u1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if out := decodeResult(t, resp); !out.Success {
		t.Errorf("unexpected result: %+v", out)
	}
	if s.Snapshot().HasProfile() {
		t.Error("expected profile cleared")
	}
}

func TestDeleteProfileNotFound(t *testing.T) {
	router, s := newTestRouter(t, remote.NewMockService(nil), ann())

	resp := serve(router, http.MethodDelete, "/profile/u1", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if !s.Snapshot().HasProfile() {
		t.Error("expected profile kept after failed delete")
	}
	if s.Snapshot().ErrorMessage() == "" {
		t.Error("expected shared error after failed delete")
	}
}
