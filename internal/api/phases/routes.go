package phases

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds all phase endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("POST /phases", h.Create)
	mux.HandleFunc("GET /phases/{id}", h.Get)
	mux.HandleFunc("PATCH /phases/{id}", h.Update)
	mux.HandleFunc("DELETE /phases/{id}", h.Delete)
}
