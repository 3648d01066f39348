package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// propertyHandler handles HTTP requests related to properties.
type propertyHandler struct{}

func registerPropertyRoutes(rg *gin.RouterGroup) {
	h := &propertyHandler{}

	properties := rg.Group("/properties")
	{
		properties.POST("", h.createProperty)
		properties.PUT("/:id", h.updateProperty)
		properties.DELETE("/:id", h.deleteProperty)
	}
}

// createProperty godoc
// @Summary Create a property
// @Description Adds a property with its room type catalog. Admin only.
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   property body dto.PropertyRequest true "Property details"
// @Success 201 {object} domain.Property
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "A property with this name already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create property"
// @Security BearerAuth
// @Router /properties [post]
func (h *propertyHandler) createProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.PropertyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	property, err := store.Services().Property.CreateProperty(c.Request.Context(), store, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create property")
		return
	}

	logger.Info("Property created", slog.String("property_id", property.ID))
	c.JSON(http.StatusCreated, property)
}

// updateProperty godoc
// @Summary Update a property
// @Description Replaces the editable fields of a property. A changed room type capacity is applied to every room of that type.
// @Tags properties
// @Accept  json
// @Produce  json
// @Param   id path string true "Property ID"
// @Param   property body dto.PropertyRequest true "Property details"
// @Success 200 {object} domain.Property
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update property"
// @Security BearerAuth
// @Router /properties/{id} [put]
func (h *propertyHandler) updateProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("property_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.PropertyRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	property, err := store.Services().Property.UpdateProperty(c.Request.Context(), store, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// deleteProperty godoc
// @Summary Delete a property
// @Description Removes a property that has no rooms
// @Tags properties
// @Param   id path string true "Property ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Property not found"
// @Failure 409 {object} dto.ErrorResponse "Property still has rooms"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete property"
// @Security BearerAuth
// @Router /properties/{id} [delete]
func (h *propertyHandler) deleteProperty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("property_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	if err := store.Services().Property.DeleteProperty(c.Request.Context(), store, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete property")
		return
	}
	c.Status(http.StatusNoContent)
}
