package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/user"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a local account. It does not log the user in.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	_, err := h.users.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			fail(c, http.StatusBadRequest, "email_taken", "email already exists")
		case errors.Is(err, user.ErrUsernameTaken):
			fail(c, http.StatusBadRequest, "username_taken", "username already exists")
		case errors.Is(err, user.ErrWeakPassword):
			fail(c, http.StatusBadRequest, "weak_password", "password too short")
		default:
			slog.Error("register failed", slog.String("err", err.Error()))
			fail(c, http.StatusInternalServerError, "internal_error", "registration failed")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}
