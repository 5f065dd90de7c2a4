package companies

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds all company endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /companies", h.List)
	mux.HandleFunc("POST /companies", h.Create)
	mux.HandleFunc("GET /companies/{id}", h.Get)
	mux.HandleFunc("PATCH /companies/{id}", h.Update)
}
