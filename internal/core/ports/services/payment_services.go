package services

import (
	"context"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/dto"
)

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// RecordPayment adds a pending payment to a tenant.
	RecordPayment(ctx context.Context, scope Scope, tenantID string, req dto.RecordPaymentRequest) (*domain.Payment, error)

	// DeletePayment removes a payment that has not been decided yet.
	DeletePayment(ctx context.Context, scope Scope, paymentID string) error
}

// PaymentApprovalSvc defines the verification workflow
type PaymentApprovalSvc interface {
	// DecidePayment moves a pending payment to approved or rejected. Both are final.
	DecidePayment(ctx context.Context, scope Scope, paymentID string, decision domain.ApprovalStatus) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentWriterSvc
	PaymentApprovalSvc
}
