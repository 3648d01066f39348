package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a row of the payments table.
type PaymentRecord struct {
	ID             string              `db:"id" json:"id"`
	TenantID       *string             `db:"tenant_id" json:"tenant_id"`
	PaidOn         *time.Time          `db:"paid_on" json:"paid_on"`
	Amount         decimal.NullDecimal `db:"amount" json:"amount"`
	Mode           *string             `db:"mode" json:"mode"`
	Note           *string             `db:"note" json:"note"`
	ApprovalStatus *string             `db:"approval_status" json:"approval_status"`
	ApprovedBy     *string             `db:"approved_by" json:"approved_by"`
	ApprovedAt     *time.Time          `db:"approved_at" json:"approved_at"`
	RecordedBy     *string             `db:"recorded_by" json:"recorded_by"`
	AuditFields
}
