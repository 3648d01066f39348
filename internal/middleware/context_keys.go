package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// sessionKey holds the caller's session store in the Gin context.
const sessionKey = contextKey("session")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetSessionFromContext returns the session store attached by SessionMiddleware.
func GetSessionFromContext(c *gin.Context) (SessionInfo, bool) {
	val, exists := c.Get(string(sessionKey))
	if !exists {
		return nil, false
	}
	info, ok := val.(SessionInfo)
	return info, ok
}
