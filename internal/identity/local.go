package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider keeps credentials in the service's own database and issues
// HS256 session tokens. It is selected when no external auth endpoint is
// configured.
type LocalProvider struct {
	db         *sqlx.DB
	jwtSecret  string
	sessionTTL time.Duration
}

func NewLocalProvider(db *sqlx.DB, jwtSecret string, sessionTTL time.Duration) *LocalProvider {
	return &LocalProvider{
		db:         db,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	openID := uuid.New().String()

	query := `
		INSERT INTO credentials (open_id, email, password_hash)
		VALUES ($1, $2, $3)
	`

	_, err = p.db.ExecContext(ctx, query, openID, email, string(hashedPassword))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create credentials: %w", err)
	}

	return &Identity{ID: openID, Email: email}, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Identity, *Session, error) {
	var row struct {
		OpenID       string `db:"open_id"`
		Email        string `db:"email"`
		PasswordHash string `db:"password_hash"`
	}

	query := `SELECT open_id, email, password_hash FROM credentials WHERE email = $1`

	err := p.db.GetContext(ctx, &row, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := p.issueSession(row.OpenID, row.Email)
	if err != nil {
		return nil, nil, err
	}

	return &Identity{ID: row.OpenID, Email: row.Email}, session, nil
}

// SignOut is a no-op beyond token validation: local session tokens are
// stateless and expire on their own.
func (p *LocalProvider) SignOut(ctx context.Context, accessToken string) error {
	_, err := p.Verify(ctx, accessToken)
	return err
}

func (p *LocalProvider) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrSessionInvalid
	}

	sub, ok1 := claims["sub"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 {
		return nil, ErrSessionInvalid
	}

	return &Identity{ID: sub, Email: email}, nil
}

func (p *LocalProvider) issueSession(openID, email string) (*Session, error) {
	expiresAt := time.Now().Add(p.sessionTTL)

	claims := jwt.MapClaims{
		"sub":   openID,
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(p.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Session{AccessToken: tokenString, ExpiresAt: expiresAt}, nil
}
