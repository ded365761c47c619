package router

import (
	"github.com/gin-gonic/gin"

	"character-forge/backend/internal/api"
	"character-forge/backend/pkg/config"
	"character-forge/backend/pkg/di"
	"character-forge/backend/pkg/errors"
	"character-forge/backend/pkg/logger"
	"character-forge/backend/pkg/observability"
)

// Router is the main HTTP surface of the application.
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New builds the gin engine with the shared middleware chain. Routes are
// registered separately with SetupRoutes.
func New(container *di.Container) *Router {
	cfg := container.Config

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(corsMiddleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes.
func (r *Router) SetupRoutes() {
	characterHandler := api.NewCharacterHandler(r.Container.CharacterService)
	templateHandler := api.NewTemplateHandler(r.Container.TemplateService)

	apiGroup := r.Engine.Group("/api")
	api.RegisterCharacterRoutes(apiGroup, characterHandler)
	api.RegisterTemplateRoutes(apiGroup, templateHandler)

	r.setupHealthRoutes()
}

// AttachMetrics instruments every route with request counters and latency
// histograms. Call before SetupRoutes so the middleware wraps the handlers.
func (r *Router) AttachMetrics() {
	metrics, err := observability.NewHTTPMetrics()
	if err != nil {
		r.Logger.Error("Failed to initialize HTTP metrics", "error", err.Error())
		return
	}
	r.Engine.Use(metrics.Middleware())
}

func (r *Router) setupHealthRoutes() {
	handler := gin.WrapF(r.Container.Health.HTTPHandler())

	r.Engine.GET("/health", handler)
	r.Engine.GET("/api/health", handler)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Authorization, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
