package contacts

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds all contact endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /contact-roles", h.Roles)
	mux.HandleFunc("GET /onboardings/{id}/contacts", h.List)
	mux.HandleFunc("POST /onboardings/{id}/contacts", h.Create)
	mux.HandleFunc("GET /contacts/{id}", h.Get)
	mux.HandleFunc("PATCH /contacts/{id}", h.Update)
	mux.HandleFunc("DELETE /contacts/{id}", h.Delete)
}
