package handlers

import (
	"net/http"

	"github.com/SscSPs/pg_console/cmd/docs"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/internal/session"
	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the long-lived objects routes need.
type Dependencies struct {
	Sessions *session.Manager
	Metrics  *metrics.Metrics
	Posthog  *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	registerAuthRoutes(r, cfg, deps)

	setupAPIV1Routes(r, cfg, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Every route runs with the
// caller's session store.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.SessionMiddleware[*session.Store](deps.Sessions))

	registerSnapshotRoutes(v1)
	registerPropertyRoutes(v1)
	registerRoomRoutes(v1)
	registerTenantRoutes(v1)
	registerPaymentRoutes(v1)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
