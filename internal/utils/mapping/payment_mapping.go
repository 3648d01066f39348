package mapping

import (
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/models"
)

// ToDomainPayment converts a payment record. Unknown modes fall back to cash and
// unknown approval states to pending, the narrowest state.
func ToDomainPayment(m models.PaymentRecord) domain.Payment {
	p := domain.Payment{
		ID:             m.ID,
		TenantID:       stringOrEmpty(m.TenantID),
		Date:           timeOrZero(m.PaidOn),
		Amount:         decimalOrZero("payment", m.ID, "amount", m.Amount),
		Mode:           domain.PaymentCash,
		Note:           stringOrEmpty(m.Note),
		ApprovalStatus: domain.ApprovalPending,
		ApprovedBy:     m.ApprovedBy,
		ApprovedAt:     m.ApprovedAt,
		RecordedBy:     stringOrEmpty(m.RecordedBy),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.Mode != nil {
		if mode := domain.PaymentMode(*m.Mode); mode.Valid() {
			p.Mode = mode
		} else {
			warnDefaulted("payment", m.ID, "mode", *m.Mode, domain.PaymentCash)
		}
	}
	if m.ApprovalStatus != nil {
		switch s := domain.ApprovalStatus(*m.ApprovalStatus); s {
		case domain.ApprovalPending, domain.ApprovalApproved, domain.ApprovalRejected:
			p.ApprovalStatus = s
		default:
			warnDefaulted("payment", m.ID, "approval_status", *m.ApprovalStatus, domain.ApprovalPending)
		}
	}
	return p
}

// ToPaymentRecord converts a domain Payment to its wire form.
func ToPaymentRecord(d domain.Payment) models.PaymentRecord {
	return models.PaymentRecord{
		ID:             d.ID,
		TenantID:       stringPtr(d.TenantID),
		PaidOn:         timePtr(d.Date),
		Amount:         nullDecimal(d.Amount),
		Mode:           stringPtr(string(d.Mode)),
		Note:           optionalString(d.Note),
		ApprovalStatus: stringPtr(string(d.ApprovalStatus)),
		ApprovedBy:     d.ApprovedBy,
		ApprovedAt:     d.ApprovedAt,
		RecordedBy:     optionalString(d.RecordedBy),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayments converts a slice of records; nil yields an empty slice.
func ToDomainPayments(ms []models.PaymentRecord) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
