package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"famfeed/cmd/app"
	"famfeed/internal/config"
	handlers "famfeed/internal/handler"
	"famfeed/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	db, repo, provider, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	// Public auth endpoints
	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/signup", handler.SignUp).Methods(http.MethodPost)
	public.HandleFunc("/auth/signin", handler.SignIn).Methods(http.MethodPost)
	public.HandleFunc("/auth/invites/{code}", handler.ValidateInviteCode).Methods(http.MethodGet)

	// Everything else requires a resolved actor
	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(mux.MiddlewareFunc(middleware.Auth(provider, repo.User)))
	authed.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/auth/me", handler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/invites", handler.CreateInviteCode).Methods(http.MethodPost)
	authed.HandleFunc("/family", handler.GetMyFamily).Methods(http.MethodGet)
	authed.HandleFunc("/family/members", handler.GetFamilyMembers).Methods(http.MethodGet)
	authed.HandleFunc("/posts", handler.ListPosts).Methods(http.MethodGet)
	authed.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	authed.HandleFunc("/posts/{id}/comments", handler.ListComments).Methods(http.MethodGet)
	authed.HandleFunc("/posts/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	authed.HandleFunc("/comments/{id}", handler.DeleteComment).Methods(http.MethodDelete)
	authed.HandleFunc("/uploads", handler.UploadImage).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.Logging,
		middleware.CORS,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
