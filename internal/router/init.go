package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sheet-auth/config"
	handlers "github.com/oksasatya/sheet-auth/internal/interface/http"
	"github.com/oksasatya/sheet-auth/internal/interface/middleware"
	"github.com/oksasatya/sheet-auth/internal/router/modules"
	"github.com/oksasatya/sheet-auth/pkg/helpers"
	"github.com/oksasatya/sheet-auth/pkg/response"
)

// Deps are the constructed components the route modules need.
type Deps struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

// NewEngine builds the gin engine with global middleware: recovery, request id,
// real ip, permissive CORS and, when enabled, the access log.
func NewEngine(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.WithField("request_id", c.GetString("request_id")).Errorf("panic recovered: %v", err)
		response.Error(c, http.StatusInternalServerError, handlers.MsgInternal, nil)
	}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:          12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "not found", nil)
	})
	return r
}

// InitModules registers every application module with the registry.
// This function should be called once during application startup.
func InitModules(r *Registry, cfg *config.Config, deps Deps) {
	r.Add(
		modules.NewHealthModule(deps.Handler),
		modules.NewUserModule(deps.Handler, deps.JWT),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

// Setup is NewEngine + InitModules + RegisterAll.
func Setup(cfg *config.Config, logger *logrus.Logger, deps Deps) *gin.Engine {
	engine := NewEngine(cfg, logger)
	reg := NewRegistry(engine)
	InitModules(reg, cfg, deps)
	reg.RegisterAll()
	return engine
}
