package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required,min=1"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
}

type CreatePostResponse struct {
	PostID int64 `json:"postId"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.List(r.Context(), actor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "post content is required", http.StatusBadRequest)
		return
	}

	postID, err := h.PostService.Create(r.Context(), actor, req.Content, req.ImageURL)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, CreatePostResponse{PostID: postID}, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetByID(r.Context(), actor, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		WriteError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.PostService.Delete(r.Context(), actor, id); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}

type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage accepts a multipart image and returns the stored URL, which
// the client passes back as imageUrl when creating a post.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "file is too large or malformed", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageURL, err := h.PostService.UploadImage(r.Context(), actor, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, UploadImageResponse{ImageURL: imageURL}, http.StatusCreated)
}
