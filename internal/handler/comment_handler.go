package handlers

import (
	"encoding/json"
	"net/http"
)

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

type CreateCommentResponse struct {
	CommentID int64 `json:"commentId"`
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	postID, ok := pathID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentService.List(r.Context(), actor, postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	postID, ok := pathID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "comment content is required", http.StatusBadRequest)
		return
	}

	commentID, err := h.CommentService.Create(r.Context(), actor, postID, req.Content)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, CreateCommentResponse{CommentID: commentID}, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		WriteError(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	if err := h.CommentService.Delete(r.Context(), actor, id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}
