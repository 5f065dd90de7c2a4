package comments

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles comment HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /tasks/{id}/comments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.store.Comments.List(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, comments)
}

// Create handles POST /tasks/{id}/comments. The author is the authenticated
// caller; any author in the body is ignored.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := api.CallerFrom(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, &api.Error{
			Message:       "authentication required",
			Category:      api.CategoryUnauthorized,
			CorrelationID: api.CorrelationID(r.Context()),
		})
		return
	}

	var in domain.CommentInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	c, err := h.store.Comments.Create(r.Context(), r.PathValue("id"), caller.Name(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}
