package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	ContentService service.ContentService
	DB             *database.DB
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		CommentService: services.Comment,
		ContentService: services.Content,
		DB:             db,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("%w: missing authorization header", apperr.ErrUnauthenticated)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("%w: malformed authorization header", apperr.ErrUnauthenticated)
	}

	return parts[1], nil
}

// authenticate resolves the request's bearer token to an account.
func (h *Handlers) authenticate(r *http.Request) (*models.User, error) {
	tok, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	return h.AuthService.ResolveToken(r.Context(), tok)
}

// authenticateFresh is authenticate with the freshness requirement, used for
// sensitive operations like password changes.
func (h *Handlers) authenticateFresh(r *http.Request) (*models.User, error) {
	tok, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	return h.AuthService.RequireFresh(r.Context(), tok)
}

// pageParams reads page/size query values; invalid values are clamped by the
// pagination engine.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = 10
	}
	return page, size
}

func parseInt64(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", apperr.ErrValidation, value)
	}
	return id, nil
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"service": "blogapi"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
