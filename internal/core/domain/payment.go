package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMode is how a payment was made.
type PaymentMode string

const (
	PaymentCash               PaymentMode = "cash"
	PaymentElectronicTransfer PaymentMode = "electronic-transfer"
	PaymentBankTransfer       PaymentMode = "bank-transfer"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentElectronicTransfer, PaymentBankTransfer:
		return true
	}
	return false
}

// ApprovalStatus is the verification state of a payment.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsTerminal is true for approved and rejected.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// Payment is a single fee payment made by a tenant.
type Payment struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenantId"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Mode           PaymentMode     `json:"mode"`
	Note           string          `json:"note"`
	ApprovalStatus ApprovalStatus  `json:"approvalStatus"`
	ApprovedBy     *string         `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time      `json:"approvedAt,omitempty"`
	RecordedBy     string          `json:"recordedBy"`
	AuditFields
}

// CheckTransition validates pending -> approved|rejected. Every other move is refused.
func (p Payment) CheckTransition(to ApprovalStatus) error {
	if !to.IsTerminal() {
		return fmt.Errorf("%w: decision must be %q or %q, got %q",
			apperrors.ErrValidation, ApprovalApproved, ApprovalRejected, to)
	}
	if p.ApprovalStatus != ApprovalPending {
		return fmt.Errorf("%w: payment %s is already %s",
			apperrors.ErrConflict, p.ID, p.ApprovalStatus)
	}
	return nil
}

// Decide applies a verified transition and stamps the audit fields.
func (p *Payment) Decide(to ApprovalStatus, approverID string, at time.Time) error {
	if err := p.CheckTransition(to); err != nil {
		return err
	}
	p.ApprovalStatus = to
	p.ApprovedBy = &approverID
	p.ApprovedAt = &at
	p.Touch(approverID, at)
	return nil
}
