package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"blogapi/internal/service"
)

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,max=256"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type PublishRequest struct {
	Published *bool `json:"published"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid post data", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.Create(r.Context(), actor, service.CreatePostRequest{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, size := pageParams(r)

	result, err := h.PostService.List(r.Context(), query.Get("sort_by"), query.Get("order"), page, size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	post, err := h.PostService.Get(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) PublishPost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	postID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// absent body means publish
	published := true
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Published != nil {
		published = *req.Published
	}

	post, err := h.PostService.SetPublished(r.Context(), actor, postID, published)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	postID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.PostService.Delete(r.Context(), actor, postID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	postID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	liked, err := h.PostService.ToggleLike(r.Context(), actor, postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, LikeResponse{Liked: liked}, http.StatusOK)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	postID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "file too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := h.PostService.AddImage(r.Context(), actor, postID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, image, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	imageID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.PostService.DeleteImage(r.Context(), actor, imageID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
