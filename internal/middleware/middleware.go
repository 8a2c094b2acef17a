package middleware

import (
	"log"
	"net/http"

	handlers "famfeed/internal/handler"
	"famfeed/internal/identity"
	"famfeed/internal/repository"
)

type Middleware func(http.Handler) http.Handler

// Auth verifies the bearer token with the identity provider and resolves the
// actor's full profile onto the request context. A valid token without a
// matching profile is rejected: only onboarded users pass.
func Auth(provider identity.Provider, userRepo repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := handlers.BearerToken(r)
			if token == "" {
				handlers.WriteError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			ident, err := provider.Verify(r.Context(), token)
			if err != nil {
				handlers.WriteError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			actor, err := userRepo.GetUserByOpenID(r.Context(), ident.ID)
			if err != nil {
				handlers.WriteError(w, "failed to resolve user", http.StatusInternalServerError)
				return
			}
			if actor == nil {
				handlers.WriteError(w, "no profile exists for this identity", http.StatusUnauthorized)
				return
			}

			ctx := handlers.ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
