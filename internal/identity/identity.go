package identity

import (
	"context"
	"errors"
	"time"
)

// Identity is the opaque external identity issued by the provider. ID is
// stable across sign-ins and distinct from the internal user record id.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("identity already registered")
	ErrSessionInvalid     = errors.New("session is invalid or expired")
)

// Provider wraps the external identity service. It knows nothing about
// families or content.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Identity, *Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}
