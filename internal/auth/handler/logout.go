package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
)

// Logout blacklists the refresh cookie and clears both credential cookies.
// Runs behind the auth middleware. A refresh token that is already on the
// blacklist is rejected like any other invalid token. Error handling is a
// closed match over known token failures; anything unexpected becomes a
// generic 500 instead of leaking its message.
func (h *Handler) Logout(c *gin.Context) {
	refresh, err := c.Cookie(token.RefreshCookie)
	if err != nil || refresh == "" {
		fail(c, http.StatusBadRequest, "invalid_token", "invalid token")
		return
	}

	claims, err := h.codec.Verify(refresh, token.KindRefresh)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenExpired),
			errors.Is(err, token.ErrTokenMalformed),
			errors.Is(err, token.ErrBadSignature):
			fail(c, http.StatusBadRequest, "invalid_token", "invalid token")
		default:
			slog.Error("logout verify failed", slog.String("err", err.Error()))
			fail(c, http.StatusInternalServerError, "internal_error", "logout failed")
		}
		return
	}

	revoked, err := h.revoked.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		slog.Error("revocation check failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "logout failed")
		return
	}
	if revoked {
		fail(c, http.StatusBadRequest, "invalid_token", "invalid token")
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.revoked.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
		slog.Error("revoke failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "logout failed")
		return
	}

	token.ClearCookies(c.Writer, h.cookies)

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
