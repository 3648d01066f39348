package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// roomHandler handles HTTP requests related to rooms.
type roomHandler struct{}

func registerRoomRoutes(rg *gin.RouterGroup) {
	h := &roomHandler{}

	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.createRoom)
		rooms.PUT("/:id", h.updateRoom)
		rooms.PUT("/:id/maintenance", h.setMaintenance)
		rooms.DELETE("/:id", h.deleteRoom)
	}
}

// createRoom godoc
// @Summary Create a room
// @Description Adds a room to a property. Type, capacity and rent follow the property's room type catalog.
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   room body dto.RoomRequest true "Room details"
// @Success 201 {object} domain.Room
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Failure 409 {object} dto.ErrorResponse "Room number already used in this property"
// @Failure 500 {object} dto.ErrorResponse "Failed to create room"
// @Security BearerAuth
// @Router /rooms [post]
func (h *roomHandler) createRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	room, err := store.Services().Room.CreateRoom(c.Request.Context(), store, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create room")
		return
	}

	logger.Info("Room created", slog.String("room_id", room.ID))
	c.JSON(http.StatusCreated, room)
}

// updateRoom godoc
// @Summary Update a room
// @Description Replaces the editable fields of a room. Capacity may not drop below the current occupancy.
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   id path string true "Room ID"
// @Param   room body dto.RoomRequest true "Room details"
// @Success 200 {object} domain.Room
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update room"
// @Security BearerAuth
// @Router /rooms/{id} [put]
func (h *roomHandler) updateRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("room_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.RoomRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	room, err := store.Services().Room.UpdateRoom(c.Request.Context(), store, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// setMaintenance godoc
// @Summary Toggle room maintenance
// @Description Marks a room as under maintenance or returns it to service
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   id path string true "Room ID"
// @Param   maintenance body dto.SetMaintenanceRequest true "Maintenance flag"
// @Success 200 {object} domain.Room
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update room"
// @Security BearerAuth
// @Router /rooms/{id}/maintenance [put]
func (h *roomHandler) setMaintenance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("room_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.SetMaintenanceRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	room, err := store.Services().Room.SetRoomMaintenance(c.Request.Context(), store, c.Param("id"), *req.UnderMaintenance)
	if err != nil {
		respondError(c, logger, err, "Failed to update room")
		return
	}
	c.JSON(http.StatusOK, room)
}

// deleteRoom godoc
// @Summary Delete a room
// @Description Removes a room without tenants
// @Tags rooms
// @Param   id path string true "Room ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 409 {object} dto.ErrorResponse "Room is occupied"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete room"
// @Security BearerAuth
// @Router /rooms/{id} [delete]
func (h *roomHandler) deleteRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("room_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	if err := store.Services().Room.DeleteRoom(c.Request.Context(), store, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete room")
		return
	}
	c.Status(http.StatusNoContent)
}
