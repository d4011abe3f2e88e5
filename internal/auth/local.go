package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/google/uuid"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// LocalProvider is an in-memory session store for development. A fixed
// demo token can be configured so curl sessions work out of the box.
type LocalProvider struct {
	mu       sync.RWMutex
	byEmail  map[string]*localAccount
	sessions map[string]string // token -> user id
	users    map[string]*internal.User
	logger   internal.Logger
}

type localAccount struct {
	userID       string
	passwordHash string
}

func NewLocalProvider(demoToken string, logger internal.Logger) *LocalProvider {
	p := &LocalProvider{
		byEmail:  make(map[string]*localAccount),
		sessions: make(map[string]string),
		users:    make(map[string]*internal.User),
		logger:   logger,
	}
	if demoToken != "" {
		demo := &internal.User{ID: "u1", Email: "demo@planner.local", Name: "Demo User"}
		p.users[demo.ID] = demo
		p.byEmail[demo.Email] = &localAccount{userID: demo.ID, passwordHash: hashPassword("demo")}
		p.sessions[demoToken] = demo.ID
	}
	return p
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}
	user := &internal.User{ID: uuid.NewString(), Email: email}
	p.users[user.ID] = user
	p.byEmail[email] = &localAccount{userID: user.ID, passwordHash: hashPassword(password)}
	return p.newSessionLocked(user), nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	acct, ok := p.byEmail[email]
	if !ok || acct.passwordHash != hashPassword(password) {
		p.logger.Warnf("auth: failed sign-in for %s", email)
		return nil, ErrInvalidCredentials
	}
	return p.newSessionLocked(p.users[acct.userID]), nil
}

func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, token)
	return nil
}

func (p *LocalProvider) ValidateToken(ctx context.Context, token string) (*internal.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	userID, ok := p.sessions[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	user := p.users[userID]
	if user == nil {
		return nil, ErrInvalidToken
	}
	cp := *user
	return &cp, nil
}

func (p *LocalProvider) newSessionLocked(user *internal.User) *Session {
	token := uuid.NewString()
	p.sessions[token] = user.ID
	cp := *user
	return &Session{Token: token, User: &cp}
}

func hashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}

var _ Provider = (*LocalProvider)(nil)
