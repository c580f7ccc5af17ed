package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
	"github.com/lxup/42Cursus-ft-transcendence/internal/user"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies local credentials and attaches a fresh cookie pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}

		slog.Error("login failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	pair, err := h.issuer.Issue(u.ID)
	if err != nil {
		slog.Error("token issue failed", slog.String("err", err.Error()))
		fail(c, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	token.SetPairCookies(c.Writer, pair, h.cookies)

	c.JSON(http.StatusOK, gin.H{"message": "login successful"})
}
