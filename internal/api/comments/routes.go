package comments

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds the task comment endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /tasks/{id}/comments", h.List)
	mux.HandleFunc("POST /tasks/{id}/comments", h.Create)
}
