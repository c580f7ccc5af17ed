package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lxup/42Cursus-ft-transcendence/internal/middleware"
	"github.com/lxup/42Cursus-ft-transcendence/internal/user"
)

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString(middleware.UserIDKey))
	if err != nil {
		fail(c, http.StatusUnauthorized, "no_credential", "authentication required")
		return
	}

	u, err := h.users.ByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "no_credential", "authentication required")
			return
		}

		slog.Error("profile lookup failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "profile lookup failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           u.ID.String(),
		"email":        u.Email,
		"username":     u.Username,
		"display_name": u.DisplayName,
	})
}
