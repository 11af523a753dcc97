package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/janisto/profile-console/internal/profile"
)

// Service errors
var (
	ErrNotFound  = errors.New("remote profile not found")
	ErrRejected  = errors.New("remote profile rejected")
	ErrUpstream  = errors.New("remote profile api error")
	ErrTransport = errors.New("remote profile api unreachable")
)

// UpstreamErrorKind classifies remote API failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindNotFound  UpstreamErrorKind = "not_found"
	UpstreamErrorKindRejected  UpstreamErrorKind = "rejected"
	UpstreamErrorKindUpstream  UpstreamErrorKind = "upstream"
	UpstreamErrorKindTransport UpstreamErrorKind = "transport"
)

// UpstreamError carries the remote response metadata needed to report a failure.
// Message holds the problem detail (or title) returned by the remote API, if any.
type UpstreamError struct {
	Kind    UpstreamErrorKind
	Status  int
	Message string
	cause   error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "remote profile api error"
	}
	if e.Message != "" {
		return fmt.Sprintf("remote profile api error (kind=%s status=%d): %s", e.Kind, e.Status, e.Message)
	}
	if e.cause == nil {
		return fmt.Sprintf("remote profile api error (kind=%s status=%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("remote profile api error (kind=%s status=%d): %v", e.Kind, e.Status, e.cause)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// MessageOf returns the remote-supplied failure message carried by err, or "".
func MessageOf(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Message
	}
	return ""
}

// Service defines the remote profile operations the console depends on.
type Service interface {
	// CreateOrUpdate persists draft under name and returns the stored profile.
	CreateOrUpdate(ctx context.Context, name string, draft *profile.Profile) (*profile.Profile, error)
	// FetchCurrent returns the current profile, or nil with a nil error when none exists.
	FetchCurrent(ctx context.Context) (*profile.Profile, error)
	// Delete removes the profile with the given id.
	Delete(ctx context.Context, id string) error
}
