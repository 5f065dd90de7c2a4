package onboardings

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds all onboarding endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /onboardings", h.List)
	mux.HandleFunc("POST /onboardings", h.Create)
	mux.HandleFunc("GET /onboardings/{id}", h.Get)
	mux.HandleFunc("PATCH /onboardings/{id}", h.Update)
	mux.HandleFunc("DELETE /onboardings/{id}", h.Delete)
	mux.HandleFunc("POST /onboardings/{id}/duplicate", h.Duplicate)
	mux.HandleFunc("GET /onboardings/{id}/phases", h.Phases)
	mux.HandleFunc("GET /onboardings/{id}/tasks", h.Tasks)
}
