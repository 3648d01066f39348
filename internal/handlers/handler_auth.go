package handlers

import (
	"net/http"

	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/internal/session"
	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler ends sessions. Tokens are issued elsewhere.
type authHandler struct {
	sessions *session.Manager
	posthog  *utils.PosthogClientWrapper
}

func registerAuthRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	h := &authHandler{sessions: deps.Sessions, posthog: deps.Posthog}

	auth := r.Group("/auth", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	{
		auth.POST("/logout", h.logout)
	}
}

// logout godoc
// @Summary Log out
// @Description Tears down the caller's session store. The token itself stays valid until it expires; the next request opens a fresh session.
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if h.sessions.Teardown(userID) {
		middleware.PosthogEvent(c, h.posthog, "session_closed", nil)
	} else {
		logger.Info("Logout without an open session")
	}
	c.Status(http.StatusNoContent)
}
