package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"famfeed/internal/config"
	"famfeed/internal/models"
	"famfeed/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	FamilyService  service.FamilyService
	PostService    service.PostService
	CommentService service.CommentService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		FamilyService:  services.Family,
		PostService:    services.Post,
		CommentService: services.Comment,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}

type actorKeyType struct{}

var actorKey actorKeyType

// ContextWithActor stores the resolved actor for the request; set by the
// auth middleware.
func ContextWithActor(ctx context.Context, actor *models.User) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) *models.User {
	actor, _ := ctx.Value(actorKey).(*models.User)
	return actor
}

// BearerToken extracts the access token from the Authorization header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
