package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh mints a bare access token from a refresh token carried in the
// request body. Stateless JSON in/out: no cookie side effect, asymmetric
// with the cookie-based login and middleware refresh on purpose.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnauthorized, "invalid_or_expired_refresh_token", "invalid or expired refresh token")
		return
	}

	claims, err := h.codec.Verify(req.RefreshToken, token.KindRefresh)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid_or_expired_refresh_token", "invalid or expired refresh token")
		return
	}

	revoked, err := h.revoked.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		slog.Error("revocation check failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "token refresh failed")
		return
	}
	if revoked {
		fail(c, http.StatusUnauthorized, "invalid_or_expired_refresh_token", "invalid or expired refresh token")
		return
	}

	access, err := h.codec.Mint(claims.User(), token.KindAccess, h.issuer.AccessTTL())
	if err != nil {
		slog.Error("access mint failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "token refresh failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access})
}
