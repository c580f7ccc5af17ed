package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lxup/42Cursus-ft-transcendence/internal/config"
	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
)

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})
	uid := uuid.New()

	refresh, err := env.codec.Mint(uid, token.KindRefresh, 24*time.Hour)
	require.NoError(t, err)

	w := env.postJSON("/auth/token/refresh", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// Stateless endpoint: no cookie side effect.
	require.Empty(t, w.Result().Cookies())

	claims, err := env.codec.Verify(body.AccessToken, token.KindAccess)
	require.NoError(t, err)
	require.Equal(t, uid, claims.User())
	require.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestRefreshEndpoint_Rejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})
	uid := uuid.New()

	expired, err := env.codec.Mint(uid, token.KindRefresh, -time.Minute)
	require.NoError(t, err)

	access, err := env.codec.Mint(uid, token.KindAccess, 5*time.Minute)
	require.NoError(t, err)

	valid, err := env.codec.Mint(uid, token.KindRefresh, 24*time.Hour)
	require.NoError(t, err)
	tampered := valid + "x"

	revokedToken, err := env.codec.Mint(uid, token.KindRefresh, 24*time.Hour)
	require.NoError(t, err)
	revokedClaims, err := env.codec.Verify(revokedToken, token.KindRefresh)
	require.NoError(t, err)
	require.NoError(t, env.revoked.Revoke(context.Background(), revokedClaims.ID, time.Hour))

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing body field", gin.H{}},
		{"garbage", gin.H{"refresh_token": "garbage"}},
		{"expired", gin.H{"refresh_token": expired}},
		{"tampered", gin.H{"refresh_token": tampered}},
		{"access token in refresh slot", gin.H{"refresh_token": access}},
		{"revoked", gin.H{"refresh_token": revokedToken}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.postJSON("/auth/token/refresh", tc.body)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, "invalid_or_expired_refresh_token", errorCode(t, w))
		})
	}
}

func TestLogout_RequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})

	w := env.postJSON("/auth/logout", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "no_credential", errorCode(t, w))
}

func TestLogout_MalformedRefreshCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})
	uid := uuid.New()

	access, err := env.codec.Mint(uid, token.KindAccess, 5*time.Minute)
	require.NoError(t, err)

	w := env.postJSON("/auth/logout", nil,
		&http.Cookie{Name: token.AccessCookie, Value: access},
		&http.Cookie{Name: token.RefreshCookie, Value: "garbage"},
	)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_token", errorCode(t, w))
}

func TestLogout_MissingRefreshCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})
	uid := uuid.New()

	access, err := env.codec.Mint(uid, token.KindAccess, 5*time.Minute)
	require.NoError(t, err)

	w := env.postJSON("/auth/logout", nil,
		&http.Cookie{Name: token.AccessCookie, Value: access},
	)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_token", errorCode(t, w))
}

// TestCredentialLifecycle walks the whole local flow: register, duplicate
// register, login, logout, then refresh reuse of the revoked token.
func TestCredentialLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})

	w := env.postJSON("/auth/register", gin.H{
		"email":    "a@b.com",
		"username": "bob",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.postJSON("/auth/register", gin.H{
		"email":    "a@b.com",
		"username": "carol",
		"password": "password2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "email_taken", errorCode(t, w))

	w = env.postJSON("/auth/login", gin.H{
		"email":    "a@b.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	access := cookieByName(t, w, token.AccessCookie)
	refresh := cookieByName(t, w, token.RefreshCookie)

	w = env.postJSON("/auth/logout", nil,
		&http.Cookie{Name: token.AccessCookie, Value: access.Value},
		&http.Cookie{Name: token.RefreshCookie, Value: refresh.Value},
	)
	require.Equal(t, http.StatusOK, w.Code)

	// Both cookies are cleared on the response.
	clearedAccess := cookieByName(t, w, token.AccessCookie)
	clearedRefresh := cookieByName(t, w, token.RefreshCookie)
	require.Empty(t, clearedAccess.Value)
	require.Empty(t, clearedRefresh.Value)
	require.Less(t, clearedAccess.MaxAge, 0)
	require.Less(t, clearedRefresh.MaxAge, 0)

	// The revoked refresh token can no longer mint access tokens.
	w = env.postJSON("/auth/token/refresh", gin.H{"refresh_token": refresh.Value})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid_or_expired_refresh_token", errorCode(t, w))

	// Nor can it authenticate the middleware's refresh fallback.
	expiredAccess, err := env.codec.Mint(uuid.New(), token.KindAccess, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: token.AccessCookie, Value: expiredAccess})
	req.AddCookie(&http.Cookie{Name: token.RefreshCookie, Value: refresh.Value})

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_RevokedTokenRejected(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, config.OAuthConfig{})
	uid := uuid.New()

	access, err := env.codec.Mint(uid, token.KindAccess, 5*time.Minute)
	require.NoError(t, err)
	refresh, err := env.codec.Mint(uid, token.KindRefresh, 24*time.Hour)
	require.NoError(t, err)

	cookies := []*http.Cookie{
		{Name: token.AccessCookie, Value: access},
		{Name: token.RefreshCookie, Value: refresh},
	}

	w := env.postJSON("/auth/logout", nil, cookies...)
	require.Equal(t, http.StatusOK, w.Code)

	// The still-valid access cookie keeps the second request authenticated,
	// but its refresh token is already blacklisted and must be refused like
	// any other invalid token.
	w = env.postJSON("/auth/logout", nil, cookies...)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_token", errorCode(t, w))
}
