package state

import (
	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/store"
)

// Profile is the API representation of the managed profile.
type Profile struct {
	ID    string `json:"id,omitempty"  doc:"Identifier assigned by the remote service" example:"u1"`
	Name  string `json:"name"          doc:"Display name"                               example:"Ann Lee"`
	Email string `json:"email"         doc:"Email address"                              example:"ann@example.com"`
	Age   *int   `json:"age,omitempty" doc:"Age in years"                               example:"30"`
}

// State mirrors the console's shared profile state.
type State struct {
	Data    *Profile `json:"data"    doc:"Current profile, null when none is held"`
	Loading bool     `json:"loading" doc:"True while an operation is in flight"`
	Error   *string  `json:"error"   doc:"Message of the last failed operation, null when none"`
}

// OperationError describes why an operation failed.
type OperationError struct {
	Kind    string `json:"kind"    enum:"transport,not_found,validation" doc:"Failure class"`
	Message string `json:"message" doc:"Human-readable reason"            example:"No profile found"`
}

// OperationResult is the outcome of save, load or delete.
type OperationResult struct {
	Success bool            `json:"success"           doc:"Whether the operation succeeded"`
	Profile *Profile        `json:"profile,omitempty" doc:"Profile after the operation, if any"`
	Error   *OperationError `json:"error,omitempty"   doc:"Failure details"`
}

func toHTTPProfile(p *profile.Profile) *Profile {
	if p == nil {
		return nil
	}
	return &Profile{ID: p.ID, Name: p.Name, Email: p.Email, Age: p.Clone().Age}
}

func toHTTPState(s store.State) State {
	return State{Data: toHTTPProfile(s.Data), Loading: s.Loading, Error: s.Clone().Error}
}

func toHTTPResult(r store.Result) OperationResult {
	out := OperationResult{Success: r.Success, Profile: toHTTPProfile(r.Profile)}
	if r.Err != nil {
		out.Error = &OperationError{Kind: string(r.Err.Kind), Message: r.Err.Message}
	}
	return out
}
