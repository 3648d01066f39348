package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/SscSPs/pg_console/internal/session"
	"github.com/gin-gonic/gin"
)

// sessionOrAbort returns the caller's session store, answering 401 when the
// session middleware did not run.
func sessionOrAbort(c *gin.Context, logger *slog.Logger) (*session.Store, bool) {
	info, _ := middleware.GetSessionFromContext(c)
	store, ok := info.(*session.Store)
	if !ok || store == nil {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return store, true
}

// bindJSON decodes the request body into req, answering 400 on failure.
func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// respondError maps err to a status code. Client errors carry their message;
// server errors are logged and answered with fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}
