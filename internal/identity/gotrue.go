package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GoTrueProvider talks to a Supabase-GoTrue-compatible auth endpoint.
type GoTrueProvider struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewGoTrueProvider(baseURL, anonKey string) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *gotrueError) text() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorDescription
}

func (p *GoTrueProvider) do(ctx context.Context, method, path, accessToken string, body interface{}, out interface{}) (int, string, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, "", fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("identity provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr gotrueError
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return resp.StatusCode, apiErr.text(), nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, "", fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, "", nil
}

func (p *GoTrueProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	var result struct {
		gotrueUser
		User gotrueUser `json:"user"`
	}

	status, msg, err := p.do(ctx, http.MethodPost, "/auth/v1/signup", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		if status == http.StatusUnprocessableEntity || strings.Contains(strings.ToLower(msg), "already registered") {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}

	// Some deployments return the user at the top level, others nested.
	user := result.gotrueUser
	if user.ID == "" {
		user = result.User
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider returned no user id")
	}

	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (p *GoTrueProvider) SignIn(ctx context.Context, email, password string) (*Identity, *Session, error) {
	var result struct {
		AccessToken string     `json:"access_token"`
		ExpiresIn   int64      `json:"expires_in"`
		User        gotrueUser `json:"user"`
	}

	status, msg, err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, nil, err
	}

	if status >= 400 {
		_ = msg
		return nil, nil, ErrInvalidCredentials
	}

	session := &Session{
		AccessToken: result.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(result.ExpiresIn) * time.Second),
	}

	return &Identity{ID: result.User.ID, Email: result.User.Email}, session, nil
}

func (p *GoTrueProvider) SignOut(ctx context.Context, accessToken string) error {
	status, _, err := p.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		return ErrSessionInvalid
	}
	if status >= 400 {
		return fmt.Errorf("identity provider rejected sign-out: status %d", status)
	}

	return nil
}

func (p *GoTrueProvider) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	var user gotrueUser

	status, _, err := p.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		return nil, ErrSessionInvalid
	}

	return &Identity{ID: user.ID, Email: user.Email}, nil
}
