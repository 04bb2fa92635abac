package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required"`
	ParentID *int64 `json:"parentId,omitempty"`
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.Create(r.Context(), actor, postID, req.Content, req.ParentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, comment, http.StatusCreated)
}

// ListComments returns one page of root comments with nested replies.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	page, size := pageParams(r)
	result, err := h.CommentService.ListTree(r.Context(), postID, page, size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}
