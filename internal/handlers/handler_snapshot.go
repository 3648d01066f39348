package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type snapshotHandler struct{}

func registerSnapshotRoutes(rg *gin.RouterGroup) {
	h := &snapshotHandler{}

	rg.GET("/me", h.getSession)
	snapshots := rg.Group("/snapshot")
	{
		snapshots.GET("", h.getSnapshot)
		snapshots.POST("/refresh", h.refreshSnapshot)
	}
}

// getSession godoc
// @Summary Current session
// @Description Returns the signed-in user, the store they use and their capabilities
// @Tags session
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func (h *snapshotHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(store.Actor(), store.Backend(), store.CreatedAt()))
}

// getSnapshot godoc
// @Summary Get the console dataset
// @Description Triggers a throttled reload and returns the role-filtered dataset. A failed reload keeps the previous data and reports the error in the body.
// @Tags snapshot
// @Produce  json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /snapshot [get]
func (h *snapshotHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	if err := store.Load(c.Request.Context()); err != nil {
		logger.Warn("Snapshot load failed", slog.String("error", err.Error()))
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponse(store.Snapshot()))
}

// refreshSnapshot godoc
// @Summary Refresh the console dataset
// @Description Reloads past the throttle and the fetch cache
// @Tags snapshot
// @Produce  json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to refresh snapshot"
// @Security BearerAuth
// @Router /snapshot/refresh [post]
func (h *snapshotHandler) refreshSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	if err := store.Refresh(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to refresh snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponse(store.Snapshot()))
}
