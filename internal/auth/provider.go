package auth

import (
	"context"
	"errors"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrEmailTaken         = errors.New("auth: email already registered")
)

// Session is what sign-up/sign-in hand back: an opaque token plus the
// stable user identity it maps to.
type Session struct {
	Token string         `json:"token"`
	User  *internal.User `json:"user"`
}

// Provider is the session/identity collaborator. The planner treats the
// session as opaque except for the user id it resolves to.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*internal.User, error)
}
