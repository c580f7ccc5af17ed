package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/oauth"
	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
	"github.com/lxup/42Cursus-ft-transcendence/internal/user"
)

// Handler wires the credential endpoints to the token and user layers.
type Handler struct {
	users       *user.Service
	issuer      *token.Issuer
	codec       *token.Codec
	revoked     token.RevocationStore
	exchange    *oauth.Exchange
	cookies     token.CookieOptions
	frontendURL string
}

func NewHandler(
	users *user.Service,
	issuer *token.Issuer,
	codec *token.Codec,
	revoked token.RevocationStore,
	exchange *oauth.Exchange,
	cookies token.CookieOptions,
	frontendURL string,
) *Handler {
	return &Handler{
		users:       users,
		issuer:      issuer,
		codec:       codec,
		revoked:     revoked,
		exchange:    exchange,
		cookies:     cookies,
		frontendURL: frontendURL,
	}
}

// RegisterRoutes mounts the public credential endpoints plus the
// cookie-authenticated logout and profile routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/token/refresh", h.Refresh)
	r.POST("/auth/logout", requireAuth, h.Logout)

	r.GET("/oauth/authorize", h.OAuthAuthorize)
	r.GET("/oauth/callback", h.OAuthCallback)

	api := r.Group("/api")
	api.Use(requireAuth)
	api.GET("/me", h.Me)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":   code,
		"message": message,
	})
}
