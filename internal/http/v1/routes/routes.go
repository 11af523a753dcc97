package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/profile-console/internal/http/v1/state"
	"github.com/janisto/profile-console/internal/http/v1/users"
	profilesvc "github.com/janisto/profile-console/internal/service/profile"
)

// DocsPath is where the interactive API reference is served, relative to the API prefix.
const DocsPath = "/api-docs"

// NewAPI mounts a huma API on router. prefix is the path the router is
// mounted under and is advertised as the OpenAPI server URL.
func NewAPI(router chi.Router, title, version, prefix string) huma.API {
	cfg := huma.DefaultConfig(title, version)
	cfg.DocsPath = DocsPath
	if prefix != "" {
		cfg.Servers = []*huma.Server{{URL: prefix}}
	}
	api := humachi.New(router, cfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	return api
}

func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

// RegisterConsole wires the console state endpoints.
func RegisterConsole(api huma.API, s state.Store) {
	state.Register(api, s)
}

// RegisterProfileAPI wires the reference profile backend endpoints.
func RegisterProfileAPI(api huma.API, svc profilesvc.Service) {
	users.Register(api, svc)
}
