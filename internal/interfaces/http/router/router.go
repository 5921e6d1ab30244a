package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/interfaces/http/middleware"
)

// Registrar registers a handler's routes on a group.
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config selects which handlers the engine mounts. Public registrars
// mount at the root (the warehouse calls absolute URLs); admin
// registrars mount under /api/v1.
type Config struct {
	Logger *zap.Logger
	Public []Registrar
	Admin  []Registrar
}

// New builds the HTTP engine with logging, recovery, health, and
// metrics endpoints.
func New(cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.RequestLogger(cfg.Logger))
	engine.Use(middleware.Recovery(cfg.Logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := engine.Group("")
	for _, r := range cfg.Public {
		r.RegisterRoutes(root)
	}

	api := engine.Group("/api/v1")
	for _, r := range cfg.Admin {
		r.RegisterRoutes(api)
	}

	return engine
}
