package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"blogapi/cmd/app"
	"blogapi/internal/config"
	handlers "blogapi/internal/handler"
	"blogapi/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, c, services := app.App(cfg)
	defer db.CloseDB()
	if c != nil {
		defer c.Close()
	}

	handler := handlers.NewHandlers(services, db, cfg)

	router := buildRouter(handler)

	handlerChain := middleware.Chain(
		router,
		middleware.RequestID,
		middleware.Logging,
		middleware.CORS,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func buildRouter(h *handlers.Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/token", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/me", h.GetCurrentUser).Methods(http.MethodGet)

	api.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}", h.UpdateUser).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id:[0-9]+}/password", h.UpdateUserPassword).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id:[0-9]+}", h.DeleteUser).Methods(http.MethodDelete)
	api.HandleFunc("/users/{idOrUsername}", h.GetUser).Methods(http.MethodGet)

	api.HandleFunc("/posts", h.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}", h.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id:[0-9]+}/publish", h.PublishPost).Methods(http.MethodPatch)
	api.HandleFunc("/posts/{id:[0-9]+}/like", h.ToggleLike).Methods(http.MethodPost)

	api.HandleFunc("/posts/{id:[0-9]+}/comments", h.ListComments).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id:[0-9]+}/comments", h.CreateComment).Methods(http.MethodPost)

	api.HandleFunc("/posts/{id:[0-9]+}/images", h.AddImage).Methods(http.MethodPost)
	api.HandleFunc("/images/{id:[0-9]+}", h.DeleteImage).Methods(http.MethodDelete)

	api.HandleFunc("/contents", h.ListContents).Methods(http.MethodGet)
	api.HandleFunc("/contents", h.CreateContent).Methods(http.MethodPost)
	api.HandleFunc("/contents/{id:[0-9]+}", h.UpdateContent).Methods(http.MethodPatch)
	api.HandleFunc("/contents/{id:[0-9]+}", h.DeleteContent).Methods(http.MethodDelete)
	api.HandleFunc("/contents/{idOrSlug}", h.GetContent).Methods(http.MethodGet)

	return router
}
