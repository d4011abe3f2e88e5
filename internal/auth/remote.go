package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// RemoteProvider delegates session handling to an external auth service
// (a Supabase-style identity backend) over JSON/HTTP.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     internal.Logger
}

func NewRemoteProvider(baseURL string, logger internal.Logger) *RemoteProvider {
	return &RemoteProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *RemoteProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return p.postSession(ctx, "/signup", credentialsBody{Email: email, Password: password})
}

func (p *RemoteProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return p.postSession(ctx, "/token", credentialsBody{Email: email, Password: password})
}

func (p *RemoteProvider) SignOut(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/signout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Errorf("auth: sign-out call failed: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.New("auth: sign-out returned non-200")
	}
	return nil
}

func (p *RemoteProvider) ValidateToken(ctx context.Context, token string) (*internal.User, error) {
	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		p.logger.Errorf("auth: failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Errorf("auth: validate call failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}
	var user internal.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		p.logger.Errorf("auth: failed to decode validate response: %v", err)
		return nil, err
	}
	return &user, nil
}

func (p *RemoteProvider) postSession(ctx context.Context, path string, body credentialsBody) (*Session, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Errorf("auth: call to %s failed: %v", path, err)
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidCredentials
	case http.StatusConflict:
		return nil, ErrEmailTaken
	default:
		return nil, errors.New("auth: auth service returned non-200")
	}
	var s Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		p.logger.Errorf("auth: failed to decode session response: %v", err)
		return nil, err
	}
	if s.User == nil || s.User.ID == "" {
		return nil, errors.New("auth: session response missing user")
	}
	return &s, nil
}

var _ Provider = (*RemoteProvider)(nil)
