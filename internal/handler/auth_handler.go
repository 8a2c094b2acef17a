package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"famfeed/internal/identity"
	"famfeed/internal/models"
	"famfeed/internal/service"
)

type SignUpRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"fullName" validate:"required,min=1"`
	InviteCode string `json:"inviteCode" validate:"required,min=1"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User    *models.User      `json:"user"`
	Session *identity.Session `json:"session,omitempty"`
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid sign-up data", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.SignUp(r.Context(), service.SignUpRequest{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{User: user}, http.StatusCreated)
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid sign-in data", http.StatusBadRequest)
		return
	}

	user, session, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, AuthResponse{User: user, Session: session}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), BearerToken(r)); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}

// Me returns the actor's resolved profile.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, actor, http.StatusOK)
}

type ValidateInviteResponse struct {
	Valid      bool   `json:"valid"`
	FamilyName string `json:"familyName"`
}

func (h *Handlers) ValidateInviteCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		WriteError(w, "invite code is required", http.StatusBadRequest)
		return
	}

	familyName, err := h.AuthService.ValidateInviteCode(r.Context(), code)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, ValidateInviteResponse{Valid: true, FamilyName: familyName}, http.StatusOK)
}
