package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles the payment verification workflow.
type paymentHandler struct{}

func registerPaymentRoutes(rg *gin.RouterGroup) {
	h := &paymentHandler{}

	payments := rg.Group("/payments")
	{
		payments.DELETE("/:id", h.deletePayment)
		payments.POST("/:id/approve", h.approvePayment)
		payments.POST("/:id/reject", h.rejectPayment)
	}
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Removes a payment that is still pending
// @Tags payments
// @Param   id path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment already decided"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete payment"
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", c.Param("id")))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	if err := store.Services().Payment.DeletePayment(c.Request.Context(), store, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

// approvePayment godoc
// @Summary Approve a payment
// @Description Moves a pending payment to approved. Requires the verify capability.
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment already decided"
// @Failure 500 {object} dto.ErrorResponse "Failed to decide payment"
// @Security BearerAuth
// @Router /payments/{id}/approve [post]
func (h *paymentHandler) approvePayment(c *gin.Context) {
	h.decide(c, domain.ApprovalApproved)
}

// rejectPayment godoc
// @Summary Reject a payment
// @Description Moves a pending payment to rejected. Requires the verify capability.
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment already decided"
// @Failure 500 {object} dto.ErrorResponse "Failed to decide payment"
// @Security BearerAuth
// @Router /payments/{id}/reject [post]
func (h *paymentHandler) rejectPayment(c *gin.Context) {
	h.decide(c, domain.ApprovalRejected)
}

func (h *paymentHandler) decide(c *gin.Context, decision domain.ApprovalStatus) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("payment_id", c.Param("id")),
		slog.String("decision", string(decision)))
	store, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	payment, err := store.Services().Payment.DecidePayment(c.Request.Context(), store, c.Param("id"), decision)
	if err != nil {
		respondError(c, logger, err, "Failed to decide payment")
		return
	}

	logger.Info("Payment decided")
	c.JSON(http.StatusOK, payment)
}
