package tasks

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles task HTTP requests.
type Handler struct {
	store *store.Store
}

// Create handles POST /tasks.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	t, err := h.store.Tasks.Create(r.Context(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, t)
}

// Get handles GET /tasks/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.Tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, t)
}

// Update handles PATCH /tasks/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.TaskPatch
	if err := api.DecodeJSON(w, r, &patch); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	t, err := h.store.Tasks.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /tasks/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteSuccess(w)
}

// BulkUpdate handles PATCH /tasks/bulk.
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var in domain.BulkTaskUpdate
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	n, err := h.store.Tasks.BulkUpdate(r.Context(), in.TaskIDs, in.Data)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, api.CountResponse{Count: n})
}

// Reorder handles POST /tasks/reorder.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var in domain.ReorderInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	t, err := h.store.Tasks.Reorder(r.Context(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, t)
}

// ToggleDone handles POST /tasks/{id}/toggle-done.
func (h *Handler) ToggleDone(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.Tasks.ToggleDone(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, t)
}
