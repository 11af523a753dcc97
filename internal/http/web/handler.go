// Package web serves the server-rendered profile console.
package web

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	applog "github.com/janisto/profile-console/internal/platform/logging"
	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/store"
)

const msgBadFormat = "Could not read the submitted form"

// Store is the state the console reads and the operations it triggers.
type Store interface {
	Snapshot() store.State
	Save(ctx context.Context, name string, draft *profile.Profile) store.Result
	Load(ctx context.Context) store.Result
	Delete(ctx context.Context, id string) store.Result
}

// Handler renders the console pages.
type Handler struct {
	store   Store
	flashes *Flashes
}

// NewHandler creates a Handler.
func NewHandler(s Store, flashes *Flashes) *Handler {
	return &Handler{store: s, flashes: flashes}
}

// Root sends the visitor to the profile when one is present, else to the form.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	target := "/profile-form"
	if h.store.Snapshot().HasProfile() {
		target = "/profile"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// ShowForm renders the form pre-filled from the current profile.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	notices := h.flashes.Pop(w, r)
	notices.AddError(snap.ErrorMessage())
	h.render(w, r, http.StatusOK, FormPage(snap.Data, profile.FormFrom(snap.Data), nil, notices))
}

// SubmitForm validates the input and saves it through the store.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest,
			FormPage(snap.Data, profile.FormFrom(snap.Data), nil, Notices{Error: []string{msgBadFormat}}))
		return
	}
	input := profile.Form{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Age:   r.PostFormValue("age"),
	}

	draft, err := profile.ParseForm(input)
	if err != nil {
		var verr *profile.ValidationError
		if !errors.As(err, &verr) {
			verr = &profile.ValidationError{Message: err.Error()}
		}
		h.render(w, r, http.StatusUnprocessableEntity,
			FormPage(snap.Data, input, verr, Notices{Error: []string{verr.Message}}))
		return
	}
	if snap.Data != nil {
		draft.ID = snap.Data.ID
	}

	res := h.store.Save(r.Context(), draft.Name, draft)
	if !res.Success {
		h.render(w, r, statusFor(res.Err),
			FormPage(h.store.Snapshot().Data, input, nil, Notices{Error: []string{failureText(res, store.OpSave)}}))
		return
	}

	h.pushNotice(w, r, Notice{Level: LevelSuccess, Message: profile.SavedMessage(snap.Data != nil)})
	redirect(w, r, "/profile")
}

// ShowProfile renders the current profile, loading it first when memory holds none.
func (h *Handler) ShowProfile(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	if !snap.HasProfile() && snap.Loading {
		h.render(w, r, http.StatusOK, LoadingPage())
		return
	}

	notices := h.flashes.Pop(w, r)
	if !snap.HasProfile() && !notices.AfterDelete {
		res := h.store.Load(r.Context())
		if !res.Success && res.Err != nil && res.Err.Kind != store.KindNotFound {
			notices.AddError(res.Err.Message)
		}
		snap = h.store.Snapshot()
	}
	notices.AddError(snap.ErrorMessage())

	if !snap.HasProfile() {
		h.render(w, r, http.StatusOK, NoProfilePage(notices))
		return
	}
	h.render(w, r, http.StatusOK, ProfilePage(snap.Data, notices))
}

// ConfirmDelete renders the confirmation step for the current profile.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	if snap.Data == nil || snap.Data.ID == "" {
		h.pushNotice(w, r, Notice{Level: LevelError, Message: profile.MsgNoUserID})
		redirect(w, r, "/profile")
		return
	}
	h.render(w, r, http.StatusOK, ConfirmDeletePage(snap.Data, h.flashes.Pop(w, r)))
}

// DeleteProfile removes the current profile. Unconfirmed requests are sent
// to the confirmation step.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	if snap.Data == nil || snap.Data.ID == "" {
		h.pushNotice(w, r, Notice{Level: LevelError, Message: profile.MsgNoUserID})
		redirect(w, r, "/profile")
		return
	}
	if r.PostFormValue(confirmField) != "yes" {
		redirect(w, r, "/profile/delete")
		return
	}

	res := h.store.Delete(r.Context(), snap.Data.ID)
	if !res.Success {
		h.pushNotice(w, r, Notice{Level: LevelError, Message: failureText(res, store.OpDelete)})
		redirect(w, r, "/profile")
		return
	}
	h.pushNotice(w, r, Notice{Level: LevelSuccess, Message: profile.MsgDeleted, AfterDelete: true})
	redirect(w, r, "/profile")
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, NotFoundPage(h.store.Snapshot().Data))
}

// RedirectNotFound sends unknown paths to /404.
func RedirectNotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/404", http.StatusFound)
}

func (h *Handler) pushNotice(w http.ResponseWriter, r *http.Request, n Notice) {
	if err := h.flashes.Push(w, r, n); err != nil {
		applog.LogError(r.Context(), "failed to store notice", err)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		applog.LogError(r.Context(), "failed to render page", err, zap.String("path", r.URL.Path))
	}
}

// redirect answers htmx requests with HX-Redirect and everything else with 303.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func failureText(res store.Result, op store.Operation) string {
	if res.Err != nil && res.Err.Message != "" {
		return res.Err.Message
	}
	return op.Fallback()
}

func statusFor(e *store.Error) int {
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
