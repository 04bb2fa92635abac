package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"blogapi/internal/repository"
	"blogapi/internal/service"
)

type ContentRequest struct {
	Title     *string  `json:"title,omitempty"`
	Text      *string  `json:"text,omitempty"`
	Published *bool    `json:"published,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

func (r ContentRequest) incoming() service.ContentIncoming {
	return service.ContentIncoming{
		Title:     r.Title,
		Text:      r.Text,
		Published: r.Published,
		Tags:      r.Tags,
	}
}

func (h *Handlers) ListContents(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)

	result, err := h.ContentService.List(r.Context(), page, size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}

// GetContent resolves the path segment as an id when numeric, otherwise as a
// slug.
func (h *Handlers) GetContent(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["idOrSlug"]

	var key repository.ContentKey
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		key = repository.ContentByID(id)
	} else {
		key = repository.ContentBySlug(raw)
	}

	content, err := h.ContentService.Get(r.Context(), key)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, content, http.StatusOK)
}

func (h *Handlers) CreateContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	content, err := h.ContentService.Create(r.Context(), actor, req.incoming())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, content, http.StatusCreated)
}

func (h *Handlers) UpdateContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	contentID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	content, err := h.ContentService.Update(r.Context(), actor, contentID, req.incoming())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, content, http.StatusOK)
}

func (h *Handlers) DeleteContent(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	contentID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.ContentService.Delete(r.Context(), actor, contentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
