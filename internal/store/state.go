package store

import "github.com/janisto/profile-console/internal/profile"

// State is the shared profile state observed by every view.
type State struct {
	Data    *profile.Profile `json:"data"`
	Loading bool             `json:"loading"`
	Error   *string          `json:"error"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{Data: s.Data.Clone(), Loading: s.Loading}
	if s.Error != nil {
		msg := *s.Error
		out.Error = &msg
	}
	return out
}

// HasProfile reports whether a profile is present.
func (s State) HasProfile() bool {
	return s.Data != nil
}

// ErrorMessage returns the shared error message, or "".
func (s State) ErrorMessage() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

// Operation names a coordinating store operation.
type Operation string

const (
	OpSave   Operation = "save"
	OpLoad   Operation = "load"
	OpDelete Operation = "delete"
)

// Fallback reports the message used when a failure carries none of its own.
func (op Operation) Fallback() string {
	switch op {
	case OpSave:
		return "Failed to save profile"
	case OpLoad:
		return "Failed to load profile"
	case OpDelete:
		return "Failed to delete profile"
	default:
		return "Operation failed"
	}
}

// MsgNoProfile is reported when the remote service holds no profile.
const MsgNoProfile = "No profile found"

// ErrorKind classifies an operation failure.
type ErrorKind string

const (
	KindTransport  ErrorKind = "transport"
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
)

// Error describes why an operation failed.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Result is the outcome of a coordinating operation.
type Result struct {
	Success bool             `json:"success"`
	Profile *profile.Profile `json:"profile,omitempty"`
	Err     *Error           `json:"error,omitempty"`
}

func succeeded(p *profile.Profile) Result {
	return Result{Success: true, Profile: p.Clone()}
}

func failed(kind ErrorKind, msg string) Result {
	return Result{Err: &Error{Kind: kind, Message: msg}}
}
