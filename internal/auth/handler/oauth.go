package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
)

// OAuthAuthorize redirects the browser to the provider authorize endpoint
// with a fresh state cookie attached.
func (h *Handler) OAuthAuthorize(c *gin.Context) {
	state := generateState(c, h.cookies.Secure)
	c.Redirect(http.StatusFound, h.exchange.AuthorizeURL(state))
}

// OAuthCallback completes the authorization-code flow: state check, code
// exchange, profile fetch, identity resolution, then credential issuance
// and a redirect back to the front-end with cookies attached.
func (h *Handler) OAuthCallback(c *gin.Context) {
	if !validateState(c) {
		fail(c, http.StatusUnauthorized, "invalid_state", "state mismatch")
		return
	}

	code := c.Query("code")
	if code == "" {
		fail(c, http.StatusBadRequest, "no_code", "no code provided")
		return
	}

	ctx := c.Request.Context()

	providerToken, err := h.exchange.ExchangeCode(ctx, code)
	if err != nil {
		slog.Warn("oauth exchange failed", slog.String("err", err.Error()))
		fail(c, http.StatusBadRequest, "token_exchange_failed", "failed to obtain token")
		return
	}

	profile, err := h.exchange.FetchProfile(ctx, providerToken)
	if err != nil {
		slog.Warn("oauth profile fetch failed", slog.String("err", err.Error()))
		fail(c, http.StatusBadRequest, "profile_fetch_failed", "failed to get user info")
		return
	}

	u, err := h.users.ResolveOAuth(ctx, profile.Email, profile.Login)
	if err != nil {
		slog.Error("oauth identity resolution failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "failed to resolve user")
		return
	}

	pair, err := h.issuer.Issue(u.ID)
	if err != nil {
		slog.Error("token issue failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "failed to issue credentials")
		return
	}

	token.SetPairCookies(c.Writer, pair, h.cookies)

	c.Redirect(http.StatusFound, h.frontendURL)
}
