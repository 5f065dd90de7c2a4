package owners

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds all owner endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /owners", h.List)
	mux.HandleFunc("GET /owners/{name}/tasks", h.Tasks)
}
