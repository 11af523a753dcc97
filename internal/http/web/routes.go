package web

import "github.com/go-chi/chi/v5"

// Register mounts the console pages on r.
func Register(r chi.Router, h *Handler) {
	r.Get("/", h.Root)
	r.Get("/profile-form", h.ShowForm)
	r.Post("/profile-form", h.SubmitForm)
	r.Get("/profile", h.ShowProfile)
	r.Get("/profile/delete", h.ConfirmDelete)
	r.Post("/profile/delete", h.DeleteProfile)
	r.Get("/404", h.NotFound)
}
