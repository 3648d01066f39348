package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEventSink struct {
	mock.Mock
}

func (m *MockEventSink) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

func TestPosthogMiddleware(t *testing.T) {
	sink := new(MockEventSink)
	sink.On("Enqueue", "u-1", "api_v1_tenants_id_move", mock.MatchedBy(func(props map[string]any) bool {
		params, ok := props["params"].(map[string]string)
		return ok && params["id"] == "t-1" && props["method"] == http.MethodPost
	})).Once()

	r := gin.New()
	r.Use(middleware.PosthogMiddleware(sink))
	auth := middleware.AuthMiddleware(testSecret, testIssuer)
	r.POST("/api/v1/tenants/:id/move", auth, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/v1/tenants", auth, func(c *gin.Context) { c.Status(http.StatusConflict) })
	r.GET("/api/v1/snapshot", auth, func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/tenants/t-1/move"},
		{http.MethodPost, "/api/v1/tenants"},
		{http.MethodGet, "/api/v1/snapshot"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", bearer(t, "u-1", time.Hour, testIssuer))
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	sink.AssertExpectations(t)
	sink.AssertNumberOfCalls(t, "Enqueue", 1)
}

func TestPosthogMiddleware_NilSink(t *testing.T) {
	r := gin.New()
	r.Use(middleware.PosthogMiddleware(nil))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
