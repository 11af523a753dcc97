package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/profile-console/internal/profile"
	profilesvc "github.com/janisto/profile-console/internal/service/profile"
)

// Register registers the reference profile API endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/users/login",
		Summary:     "Create or update the profile",
		Description: "Stores the profile under the login name. An existing profile is matched by id, then by name.",
		Tags:        []string{"Users"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		draft := input.Body.Profile
		if draft.Name == "" {
			draft.Name = input.Body.Name
		}
		if err := profile.Validate(&profile.Profile{Name: draft.Name, Email: draft.Email, Age: draft.Age}); err != nil {
			return nil, validationProblem(err)
		}

		p, err := svc.CreateOrUpdate(ctx, input.Body.Name, profilesvc.SaveParams{
			ID:    draft.ID,
			Name:  draft.Name,
			Email: draft.Email,
			Age:   draft.Age,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &LoginOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the current profile",
		Description: "Returns the most recently written profile.",
		Tags:        []string{"Users"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		p, err := svc.Current(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileGetOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-user",
		Method:        http.MethodDelete,
		Path:          "/users/{id}",
		Summary:       "Delete a profile",
		Description:   "Permanently deletes the profile with the given id.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *UserDeleteInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func validationProblem(err error) error {
	var verr *profile.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return huma.Error422UnprocessableEntity(verr.Message, &huma.ErrorDetail{
			Message:  verr.Message,
			Location: "body.profile." + verr.Field,
		})
	}
	return huma.Error422UnprocessableEntity(err.Error())
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("Profile not found")
	case errors.Is(err, profilesvc.ErrInvalid):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
