package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/services"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/handlers"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/SscSPs/pg_console/internal/platform/config"
	"github.com/SscSPs/pg_console/internal/repositories/demo"
	"github.com/SscSPs/pg_console/internal/session"
	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "pg-console-test"
)

type HandlersTestSuite struct {
	suite.Suite
	router   *gin.Engine
	sessions *session.Manager
	metrics  *metrics.Metrics
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := demo.NewStore(demo.NewMemoryKV())
	_, err := store.Seed(ctx, time.Now())
	s.Require().NoError(err)

	s.metrics = metrics.New()
	backend := session.NewBackend("demo", store.Provider(), fetch.Options{}, s.metrics, services.WithMetrics(s.metrics))
	s.sessions = session.NewManager(backend, backend,
		snapshot.Config{MinInterval: time.Minute, FetchTimeout: time.Second},
		session.WithMetrics(s.metrics))

	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slogDiscard()))
	handlers.RegisterRoutes(s.router, cfg, handlers.Dependencies{Sessions: s.sessions, Metrics: s.metrics})
}

func (s *HandlersTestSuite) TearDownTest() {
	s.sessions.Close()
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *HandlersTestSuite) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := utils.GenerateJWT(userID, testSecret, time.Hour, testIssuer)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *HandlersTestSuite) TestHealthAndMetrics() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())

	s.do(http.MethodGet, "/api/v1/snapshot", "demo-admin", nil)
	w = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "pg_console_session_active 1")
}

func (s *HandlersTestSuite) TestRequiresToken() {
	w := s.do(http.MethodGet, "/api/v1/snapshot", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(0, s.sessions.Len())
}

func (s *HandlersTestSuite) TestSnapshot_ManagerSeesAssignedProperty() {
	w := s.do(http.MethodGet, "/api/v1/snapshot", "demo-manager", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.SnapshotResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Properties, 1)
	s.Equal("Sunrise", resp.Properties[0].Name)
	for _, t := range resp.Tenants {
		s.Equal("demo-prop-sunrise", t.PropertyID)
	}
	s.Empty(resp.Error)
	s.NotNil(resp.LoadedAt)
}

func (s *HandlersTestSuite) TestSession_ViewerCapabilities() {
	w := s.do(http.MethodGet, "/api/v1/me", "demo-viewer", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.SessionResponse
	s.decode(w, &resp)
	s.Equal("demo-viewer", resp.User.ID)
	s.Equal("demo", resp.Backend)
	s.Equal([]domain.Capability{domain.CapRead}, resp.Capabilities)
}

func (s *HandlersTestSuite) TestCreateTenant_FullRoomIsRejected() {
	w := s.do(http.MethodPost, "/api/v1/tenants", "demo-manager", dto.TenantRequest{
		Name: "Dev", Phone: "98450 44444", StartDate: time.Now(), RoomID: "demo-room-101",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "full")
}

func (s *HandlersTestSuite) TestCreateTenant_ThenVisibleInSnapshot() {
	w := s.do(http.MethodPost, "/api/v1/tenants", "demo-manager", dto.TenantRequest{
		Name: "Dev", Phone: "98450 44444", StartDate: time.Now(), RoomID: "demo-room-102",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created domain.Tenant
	s.decode(w, &created)
	s.Equal("demo-prop-sunrise", created.PropertyID)

	w = s.do(http.MethodPost, "/api/v1/snapshot/refresh", "demo-manager", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp dto.SnapshotResponse
	s.decode(w, &resp)

	found := false
	for _, t := range resp.Tenants {
		found = found || t.ID == created.ID
	}
	s.True(found)
}

func (s *HandlersTestSuite) TestCreateTenant_LastBedGoesToOneSession() {
	// both sessions load while demo-room-102 is still empty
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/snapshot", "demo-admin", nil).Code)
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/snapshot", "demo-manager", nil).Code)

	w := s.do(http.MethodPost, "/api/v1/tenants", "demo-manager", dto.TenantRequest{
		Name: "Dev", Phone: "98450 44444", StartDate: time.Now(), RoomID: "demo-room-102",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/tenants", "demo-admin", dto.TenantRequest{
		Name: "Esha", Phone: "98450 55555", StartDate: time.Now(), RoomID: "demo-room-102",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "full")
}

func (s *HandlersTestSuite) TestCreateTenant_BadBody() {
	w := s.do(http.MethodPost, "/api/v1/tenants", "demo-manager", `{"name":`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestCreateProperty_ViewerForbidden() {
	w := s.do(http.MethodPost, "/api/v1/properties", "demo-viewer", dto.PropertyRequest{
		Name: "Harbor", Type: domain.PropertyUnisex,
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestRecordPayment_OutsideAssignmentNotFound() {
	w := s.do(http.MethodPost, "/api/v1/tenants/demo-tenant-chen/payments", "demo-manager", map[string]any{
		"amount": "500", "mode": "cash",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestApprovePayment_IsFinal() {
	w := s.do(http.MethodPost, "/api/v1/payments/demo-pay-2/approve", "demo-manager", nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/v1/payments/demo-pay-2/approve", "demo-accountant", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var payment domain.Payment
	s.decode(w, &payment)
	s.Equal(domain.ApprovalApproved, payment.ApprovalStatus)
	s.Require().NotNil(payment.ApprovedBy)
	s.Equal("demo-accountant", *payment.ApprovedBy)

	w = s.do(http.MethodPost, "/api/v1/payments/demo-pay-2/reject", "demo-accountant", nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/payments/demo-pay-2", "demo-accountant", nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestSetMaintenance() {
	w := s.do(http.MethodPut, "/api/v1/rooms/demo-room-201/maintenance", "demo-manager", `{}`)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/v1/rooms/demo-room-201/maintenance", "demo-manager", dto.SetMaintenanceRequest{UnderMaintenance: new(bool)})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var room domain.Room
	s.decode(w, &room)
	s.False(room.UnderMaintenance)
}

func (s *HandlersTestSuite) TestLogout_TearsDownSession() {
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/api/v1/me", "demo-admin", nil).Code)
	s.Equal(1, s.sessions.Len())

	w := s.do(http.MethodPost, "/auth/logout", "demo-admin", nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal(0, s.sessions.Len())

	w = s.do(http.MethodPost, "/auth/logout", "demo-admin", nil)
	s.Equal(http.StatusNoContent, w.Code)
}
