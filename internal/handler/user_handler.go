package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"blogapi/internal/repository"
	"blogapi/internal/service"
)

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	Superuser bool   `json:"superuser"`
	Disabled  bool   `json:"disabled"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Superuser *bool   `json:"superuser,omitempty"`
	Disabled  *bool   `json:"disabled,omitempty"`
}

type PasswordPatchRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	filter := repository.UserFilter{}
	query := r.URL.Query()
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if raw := query.Get("superuser"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Superuser = &v
		}
	}
	if raw := query.Get("disabled"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Disabled = &v
		}
	}

	page, size := pageParams(r)
	result, err := h.UserService.List(r.Context(), actor, filter, page, size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid user data", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Create(r.Context(), actor, service.CreateUserRequest{
		Username:  req.Username,
		Password:  req.Password,
		Superuser: req.Superuser,
		Disabled:  req.Disabled,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusCreated)
}

// GetUser resolves the path segment as an id when numeric, otherwise as a
// username.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	raw := mux.Vars(r)["idOrUsername"]
	var lookup repository.Lookup
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		lookup = repository.ByID(id)
	} else {
		lookup = repository.ByUsername(raw)
	}

	user, err := h.UserService.Get(r.Context(), actor, lookup)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	userID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Update(r.Context(), actor, userID, service.UpdateUserRequest{
		Username:  req.Username,
		Superuser: req.Superuser,
		Disabled:  req.Disabled,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

// UpdateUserPassword requires a fresh token: one minted by a password login,
// not a refresh.
func (h *Handlers) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticateFresh(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	userID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	var req PasswordPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid password data", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdatePassword(r.Context(), actor, userID, req.Password, req.PasswordConfirm)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, err := h.authenticate(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	userID, err := parseInt64(mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if err := h.UserService.Delete(r.Context(), actor, userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
