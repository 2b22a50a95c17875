package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/infrastructure/auth"
	"github.com/shelfscan/backend/internal/infrastructure/config"
	"github.com/shelfscan/backend/internal/infrastructure/logger"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Dependencies carries everything the router needs to assemble the engine
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	// Handlers are mounted under /api/v1. Public endpoints (health, auth
	// register/login/refresh) are let through by the JWT middleware's skip
	// paths.
	Handlers []RouteRegistrar

	// Root handlers are additionally mounted at the server root, so probes
	// can hit /health without the API prefix.
	Root []RouteRegistrar
}

// New assembles the gin engine with the full middleware chain and all
// registered handlers under /api/v1.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	switch cfg.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "testing":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtCfg := middleware.DefaultJWTConfig(deps.JWTService)
	jwtCfg.TokenBlacklist = deps.TokenBlacklist
	jwtCfg.Logger = deps.Logger
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	api := engine.Group("/api/v1")
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}

	root := engine.Group("")
	for _, h := range deps.Root {
		h.RegisterRoutes(root)
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
