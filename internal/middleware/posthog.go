package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/gin-gonic/gin"
)

// untracked paths never produce analytics events.
var untracked = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware reports every successful mutating request as an event
// named after its route, e.g. "POST /api/v1/tenants/:id/move" becomes
// "api_v1_tenants_id_move". Reads are not tracked.
func PosthogMiddleware(sink utils.EventSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || untracked[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		name := eventName(c.FullPath())
		if name == "" {
			return
		}

		props := map[string]any{"status_code": c.Writer.Status()}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		PosthogEvent(c, sink, name, props)
	}
}

// PosthogEvent sends a custom event for the authenticated caller. Session
// role and backend are added when a session is attached.
func PosthogEvent(c *gin.Context, sink utils.EventSink, event string, properties map[string]any) {
	if sink == nil {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path
	if store, ok := GetSessionFromContext(c); ok {
		properties["role"] = string(store.Actor().Role)
		properties["backend"] = store.Backend()
	}

	sink.Enqueue(userID, event, properties)
}

func eventName(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	route = strings.ReplaceAll(route, ":", "")
	return strings.ReplaceAll(route, "/", "_")
}
