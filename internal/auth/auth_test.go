package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

func TestLocalProvider_SignUpSignInSignOut(t *testing.T) {
	p := NewLocalProvider("", internal.NopLogger{})
	ctx := context.Background()

	s, err := p.SignUp(ctx, "a@b.com", "segredo1")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "a@b.com", s.User.Email)

	_, err = p.SignUp(ctx, "a@b.com", "outra")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = p.SignIn(ctx, "a@b.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	s2, err := p.SignIn(ctx, "a@b.com", "segredo1")
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, s2.User.ID)
	assert.NotEqual(t, s.Token, s2.Token) // fresh token per sign-in

	user, err := p.ValidateToken(ctx, s2.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, user.ID)

	require.NoError(t, p.SignOut(ctx, s2.Token))
	_, err = p.ValidateToken(ctx, s2.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// the first session is untouched by the second's sign-out
	_, err = p.ValidateToken(ctx, s.Token)
	assert.NoError(t, err)
}

func TestLocalProvider_DemoToken(t *testing.T) {
	p := NewLocalProvider("MOCK-TOKEN", internal.NopLogger{})
	user, err := p.ValidateToken(context.Background(), "MOCK-TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = p.ValidateToken(context.Background(), "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRemoteProvider_SignInMapsStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch {
		case r.URL.Path == "/token" && body.Password == "certa":
			json.NewEncoder(w).Encode(Session{Token: "t1", User: &internal.User{ID: "u9", Email: body.Email}})
		case r.URL.Path == "/signup":
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, internal.NopLogger{})
	ctx := context.Background()

	s, err := p.SignIn(ctx, "a@b.com", "certa")
	require.NoError(t, err)
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, "u9", s.User.ID)

	_, err = p.SignIn(ctx, "a@b.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignUp(ctx, "a@b.com", "x")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRemoteProvider_ValidateToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/validate", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["token"] != "valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(internal.User{ID: "u9"})
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, internal.NopLogger{})
	user, err := p.ValidateToken(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, "u9", user.ID)

	_, err = p.ValidateToken(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRemoteProvider_RejectsSessionWithoutUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Session{Token: "t1"})
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, internal.NopLogger{})
	_, err := p.SignIn(context.Background(), "a@b.com", "x")
	assert.Error(t, err)
}
