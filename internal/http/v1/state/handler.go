package state

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/store"
)

// Store is the state the API reads and the operations it triggers.
type Store interface {
	Snapshot() store.State
	Save(ctx context.Context, name string, draft *profile.Profile) store.Result
	Load(ctx context.Context) store.Result
	Delete(ctx context.Context, id string) store.Result
}

// Register registers the state endpoints.
func Register(api huma.API, s Store) {
	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/state",
		Summary:     "Get console state",
		Description: "Returns a snapshot of the shared profile state.",
		Tags:        []string{"State"},
	}, func(_ context.Context, _ *StateGetInput) (*StateGetOutput, error) {
		return &StateGetOutput{Body: toHTTPState(s.Snapshot())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-profile",
		Method:      http.MethodPost,
		Path:        "/profile",
		Summary:     "Save profile",
		Description: "Validates the draft and creates or updates the profile through the remote service.",
		Tags:        []string{"Profile"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, func(ctx context.Context, input *ProfileSaveInput) (*OperationOutput, error) {
		draft := &profile.Profile{
			Name:  strings.TrimSpace(input.Body.Name),
			Email: strings.TrimSpace(input.Body.Email),
			Age:   input.Body.Age,
		}
		if err := profile.Validate(draft); err != nil {
			return nil, validationProblem(err)
		}
		if current := s.Snapshot().Data; current != nil {
			draft.ID = current.ID
		}
		return operationOutput(s.Save(ctx, draft.Name, draft)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "load-profile",
		Method:      http.MethodPost,
		Path:        "/profile/load",
		Summary:     "Load profile",
		Description: "Fetches the current profile from the remote service unless one is already held.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *ProfileLoadInput) (*OperationOutput, error) {
		return operationOutput(s.Load(ctx)), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-profile",
		Method:      http.MethodDelete,
		Path:        "/profile/{id}",
		Summary:     "Delete profile",
		Description: "Deletes the profile remotely and clears it locally.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *ProfileDeleteInput) (*OperationOutput, error) {
		return operationOutput(s.Delete(ctx, input.ID)), nil
	})
}

func operationOutput(r store.Result) *OperationOutput {
	return &OperationOutput{Status: statusFor(r), Body: toHTTPResult(r)}
}

func statusFor(r store.Result) int {
	if r.Success {
		return http.StatusOK
	}
	if r.Err == nil {
		return http.StatusInternalServerError
	}
	switch r.Err.Kind {
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func validationProblem(err error) error {
	var verr *profile.ValidationError
	if !errors.As(err, &verr) {
		return huma.Error422UnprocessableEntity(err.Error())
	}
	detail := &huma.ErrorDetail{Message: verr.Message}
	if verr.Field != "" {
		detail.Location = "body." + verr.Field
	}
	return huma.Error422UnprocessableEntity(verr.Message, detail)
}
