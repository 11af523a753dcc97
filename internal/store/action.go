package store

import (
	"fmt"

	"github.com/janisto/profile-console/internal/profile"
)

// Action is a state transition. The set of actions is closed to this package.
type Action interface {
	action()
}

// SetProfile replaces the profile and clears the shared error.
type SetProfile struct {
	Profile *profile.Profile
}

// ClearProfile removes the profile and clears the shared error.
type ClearProfile struct{}

// SetLoading toggles the in-flight flag.
type SetLoading struct {
	Loading bool
}

// SetError sets the shared error; a nil Message clears it.
type SetError struct {
	Message *string
}

func (SetProfile) action()   {}
func (ClearProfile) action() {}
func (SetLoading) action()   {}
func (SetError) action()     {}

// Reduce applies a to s and returns the next state. It never mutates s.
func Reduce(s State, a Action) State {
	next := s.Clone()
	switch a := a.(type) {
	case SetProfile:
		next.Data = a.Profile.Clone()
		next.Error = nil
	case ClearProfile:
		next.Data = nil
		next.Error = nil
	case SetLoading:
		next.Loading = a.Loading
	case SetError:
		if a.Message == nil {
			next.Error = nil
		} else {
			msg := *a.Message
			next.Error = &msg
		}
	default:
		panic(fmt.Sprintf("store: unknown action %T", a))
	}
	return next
}

func errorMessage(msg string) SetError {
	return SetError{Message: &msg}
}
