package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
)

// UserIDKey is the gin context key carrying the authenticated user ID.
const UserIDKey = "userID"

// RequireAuth authenticates the credential cookies on every request. When
// the authenticator re-mints an access token from the refresh token, the
// replacement is written back into the outbound response here, so the
// browser is transparently re-credentialed.
func RequireAuth(auth *token.Authenticator, opts token.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, _ := c.Cookie(token.AccessCookie)
		refresh, _ := c.Cookie(token.RefreshCookie)

		result, err := auth.Authenticate(c.Request.Context(), access, refresh)
		if err != nil {
			slog.Debug("request unauthenticated",
				slog.String("path", c.Request.URL.Path),
				slog.String("reason", err.Error()),
			)

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "no_credential",
				"message": "authentication required",
			})
			return
		}

		if result.ReplacementAccess != "" {
			token.SetAccessCookie(c.Writer, result.ReplacementAccess, result.ReplacementMaxAge, opts)
		}

		c.Set(UserIDKey, result.UserID.String())
		c.Next()
	}
}
