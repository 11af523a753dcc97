package web

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	flashSessionName = "profile-console-flash"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	afterDeleteKey   = "after_delete"
)

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = flashKeySuccess
	LevelError   Level = flashKeyError
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Level   Level
	Message string
	// AfterDelete suppresses the automatic profile load on the next page.
	AfterDelete bool
}

// Notices are the messages collected for one page render.
type Notices struct {
	Success     []string
	Error       []string
	AfterDelete bool
}

// Empty reports whether there is nothing to show.
func (n Notices) Empty() bool {
	return len(n.Success) == 0 && len(n.Error) == 0
}

// AddError appends msg unless it is already present.
func (n *Notices) AddError(msg string) {
	if msg == "" {
		return
	}
	for _, m := range n.Error {
		if m == msg {
			return
		}
	}
	n.Error = append(n.Error, msg)
}

// Flashes carries notices across a redirect in a signed cookie session.
type Flashes struct {
	store sessions.Store
}

// NewFlashes creates a Flashes backed by store.
func NewFlashes(store sessions.Store) *Flashes {
	return &Flashes{store: store}
}

// NewCookieFlashes creates a Flashes backed by a signed cookie store.
func NewCookieFlashes(secret string, secure bool) *Flashes {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return NewFlashes(store)
}

// Push stores n for the next request.
func (f *Flashes) Push(w http.ResponseWriter, r *http.Request, n Notice) error {
	sess, _ := f.store.Get(r, flashSessionName)
	if n.Message != "" {
		sess.AddFlash(n.Message, string(n.Level))
	}
	if n.AfterDelete {
		sess.Values[afterDeleteKey] = true
	}
	return sess.Save(r, w)
}

// Pop returns and clears the pending notices.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) Notices {
	sess, _ := f.store.Get(r, flashSessionName)

	n := Notices{
		Success: flashStrings(sess.Flashes(flashKeySuccess)),
		Error:   flashStrings(sess.Flashes(flashKeyError)),
	}
	if v, ok := sess.Values[afterDeleteKey].(bool); ok {
		n.AfterDelete = v
		delete(sess.Values, afterDeleteKey)
	}

	if !n.Empty() || n.AfterDelete {
		_ = sess.Save(r, w)
	}
	return n
}

func flashStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
