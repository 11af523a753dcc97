package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Service errors
var (
	ErrNotFound = errors.New("profile not found")
	ErrInvalid  = errors.New("invalid profile")
)

// Profile represents stored profile data.
type Profile struct {
	ID        string
	Name      string
	Email     string
	Age       *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveParams carries the attributes written by CreateOrUpdate.
// ID is optional; when it names an existing profile that profile is updated.
type SaveParams struct {
	ID    string
	Name  string
	Email string
	Age   *int
}

// Service defines the reference profile backend.
//
// CreateOrUpdate resolves the target profile by params.ID first, then by the
// login name, and creates a new profile with a fresh id when neither matches.
// Current returns the most recently written profile, or ErrNotFound.
//
// Implementations must normalize input data:
//   - Name: trim whitespace
//   - Email: lowercase and trim whitespace
type Service interface {
	CreateOrUpdate(ctx context.Context, name string, params SaveParams) (*Profile, error)
	Current(ctx context.Context) (*Profile, error)
	Delete(ctx context.Context, id string) error
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrInvalid):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

func copyAge(age *int) *int {
	if age == nil {
		return nil
	}
	v := *age
	return &v
}

// normalize trims and lowercases input. The profile name falls back to the
// login name when the draft carries none.
func normalize(name string, params SaveParams) (SaveParams, error) {
	out := SaveParams{
		ID:    strings.TrimSpace(params.ID),
		Name:  strings.TrimSpace(params.Name),
		Email: strings.ToLower(strings.TrimSpace(params.Email)),
		Age:   copyAge(params.Age),
	}
	if out.Name == "" {
		out.Name = strings.TrimSpace(name)
	}
	if out.Name == "" {
		return SaveParams{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if out.Age != nil && *out.Age < 0 {
		return SaveParams{}, fmt.Errorf("%w: age must not be negative", ErrInvalid)
	}
	return out, nil
}
