package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SessionInfo is what the middleware needs to know about a session store.
type SessionInfo interface {
	Actor() *domain.Actor
	Backend() string
}

// SessionAcquirer opens or returns the session store of a user.
type SessionAcquirer[S SessionInfo] interface {
	Acquire(ctx context.Context, userID string) (S, error)
}

// SessionMiddleware attaches the caller's session store to the request. It
// must run after AuthMiddleware.
func SessionMiddleware[S SessionInfo](sessions SessionAcquirer[S]) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		store, err := sessions.Acquire(c.Request.Context(), userID)
		if err != nil {
			status := apperrors.StatusCode(err)
			if status >= http.StatusInternalServerError {
				logger.Error("Failed to open session", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(status, gin.H{"error": "Failed to open session"})
				return
			}
			logger.Warn("Session refused", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(status, gin.H{"error": apperrors.Message(err)})
			return
		}

		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(),
			logger.With(slog.String("role", string(store.Actor().Role)), slog.String("backend", store.Backend()))))
		c.Set(string(sessionKey), SessionInfo(store))

		c.Next()
	}
}
