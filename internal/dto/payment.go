package dto

import (
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records a payment against a tenant. New payments are
// always pending.
type RecordPaymentRequest struct {
	Date   time.Time          `json:"date"`
	Amount decimal.Decimal    `json:"amount"`
	Mode   domain.PaymentMode `json:"mode" binding:"required,oneof=cash electronic-transfer bank-transfer"`
	Note   string             `json:"note" binding:"max=500"`
}
