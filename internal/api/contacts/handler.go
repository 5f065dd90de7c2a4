package contacts

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles contact HTTP requests.
type Handler struct {
	store *store.Store
}

// Roles handles GET /contact-roles.
func (h *Handler) Roles(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, domain.SuggestedContactRoles)
}

// List handles GET /onboardings/{id}/contacts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.store.Contacts.List(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, contacts)
}

// Create handles POST /onboardings/{id}/contacts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	in.OnboardingID = r.PathValue("id")

	c, err := h.store.Contacts.Create(r.Context(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, c)
}

// Get handles GET /contacts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Contacts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}

// Update handles PATCH /contacts/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.ContactPatch
	if err := api.DecodeJSON(w, r, &patch); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	c, err := h.store.Contacts.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /contacts/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteSuccess(w)
}
