package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tenantHandler handles HTTP requests related to tenants and their payments.
type tenantHandler struct{}

func registerTenantRoutes(rg *gin.RouterGroup) {
	h := &tenantHandler{}

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.PUT("/:id", h.updateTenant)
		tenants.DELETE("/:id", h.deleteTenant)
		tenants.POST("/:id/move", h.moveTenant)
		tenants.POST("/:id/payments", h.recordPayment)
	}
}

// createTenant godoc
// @Summary Create a tenant
// @Description Assigns a new tenant to a room with a free bed
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   tenant body dto.TenantRequest true "Tenant details"
// @Success 201 {object} domain.Tenant
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Failure 409 {object} dto.ErrorResponse "Room is full or tenant already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create tenant"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.TenantRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	tenant, err := store.Services().Tenant.CreateTenant(c.Request.Context(), store, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create tenant")
		return
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.ID), slog.String("room_id", tenant.RoomID))
	c.JSON(http.StatusCreated, tenant)
}

// updateTenant godoc
// @Summary Update a tenant
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   id path string true "Tenant ID"
// @Param   tenant body dto.TenantRequest true "Tenant details"
// @Success 200 {object} domain.Tenant
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Tenant not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update tenant"
// @Security BearerAuth
// @Router /tenants/{id} [put]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("tenant_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.TenantRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	tenant, err := store.Services().Tenant.UpdateTenant(c.Request.Context(), store, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update tenant")
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// moveTenant godoc
// @Summary Move a tenant
// @Description Reassigns a tenant to another room with a free bed
// @Tags tenants
// @Accept  json
// @Produce  json
// @Param   id path string true "Tenant ID"
// @Param   move body dto.MoveTenantRequest true "Target room"
// @Success 200 {object} domain.Tenant
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Tenant or room not found"
// @Failure 409 {object} dto.ErrorResponse "Room is full"
// @Failure 500 {object} dto.ErrorResponse "Failed to move tenant"
// @Security BearerAuth
// @Router /tenants/{id}/move [post]
func (h *tenantHandler) moveTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("tenant_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.MoveTenantRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	tenant, err := store.Services().Tenant.MoveTenant(c.Request.Context(), store, c.Param("id"), req.RoomID)
	if err != nil {
		respondError(c, logger, err, "Failed to move tenant")
		return
	}

	logger.Info("Tenant moved", slog.String("room_id", tenant.RoomID))
	c.JSON(http.StatusOK, tenant)
}

// deleteTenant godoc
// @Summary Delete a tenant
// @Description Removes a tenant and their payments
// @Tags tenants
// @Param   id path string true "Tenant ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Tenant not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete tenant"
// @Security BearerAuth
// @Router /tenants/{id} [delete]
func (h *tenantHandler) deleteTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("tenant_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	if err := store.Services().Tenant.DeleteTenant(c.Request.Context(), store, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete tenant")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Adds a pending payment to a tenant
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Tenant ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Tenant not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /tenants/{id}/payments [post]
func (h *tenantHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("tenant_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	payment, err := store.Services().Payment.RecordPayment(c.Request.Context(), store, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.ID), slog.String("amount", payment.Amount.String()))
	c.JSON(http.StatusCreated, payment)
}
