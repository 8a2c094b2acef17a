package handlers

import (
	"net/http"
)

func (h *Handlers) GetMyFamily(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	family, err := h.FamilyService.GetMyFamily(r.Context(), actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// family is null for not-yet-onboarded users.
	WriteSuccess(w, family, http.StatusOK)
}

func (h *Handlers) GetFamilyMembers(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	members, err := h.FamilyService.GetMembers(r.Context(), actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, members, http.StatusOK)
}

func (h *Handlers) CreateInviteCode(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	invite, err := h.FamilyService.CreateInviteCode(r.Context(), actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, invite, http.StatusCreated)
}
