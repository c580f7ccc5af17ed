package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/lxup/42Cursus-ft-transcendence/internal/auth/handler"
	"github.com/lxup/42Cursus-ft-transcendence/internal/config"
	"github.com/lxup/42Cursus-ft-transcendence/internal/middleware"
	"github.com/lxup/42Cursus-ft-transcendence/internal/oauth"
	"github.com/lxup/42Cursus-ft-transcendence/internal/token"
	"github.com/lxup/42Cursus-ft-transcendence/internal/user"
)

func setupHTTP(ctx context.Context, cfg *config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	codec := token.NewCodec(cfg.Token.Secret)
	issuer := token.NewIssuer(codec, cfg.Token.AccessTTL, cfg.Token.RefreshTTL)
	revoked := token.NewRedisRevocationStore(infra.Redis.Client)
	authenticator := token.NewAuthenticator(codec, revoked, cfg.Token.AccessTTL)

	users := user.NewService(user.NewPostgresStore(infra.DB))
	exchange := oauth.New(cfg.OAuth)

	cookies := token.CookieOptions{
		Secure: cfg.Production(),
	}

	authHandler := handler.NewHandler(
		users,
		issuer,
		codec,
		revoked,
		exchange,
		cookies,
		cfg.OAuth.FrontendURL,
	)

	requireAuth := middleware.RequireAuth(authenticator, cookies)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router, requireAuth)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}
