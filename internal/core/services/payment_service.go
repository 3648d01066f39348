package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
	"github.com/google/uuid"
)

// Analytics events emitted by the payment workflow.
const (
	EventPaymentRecorded = "payment_recorded"
	EventPaymentApproved = "payment_approved"
	EventPaymentRejected = "payment_rejected"
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewPaymentService creates the payment service and approval workflow over repo.
func NewPaymentService(repo portsrepo.PaymentRepositoryFacade, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(options...),
		paymentRepo: repo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) RecordPayment(ctx context.Context, scope portssvc.Scope, tenantID string, req dto.RecordPaymentRequest) (_ *domain.Payment, err error) {
	defer func() { s.Observe("payment.record", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapRecordPayments)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationFailedError("amount must be greater than zero")
	}
	tenant, ok := scope.Current().Tenant(tenantID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("tenant %s not found", tenantID))
	}
	if _, err := s.RequireProperty(ctx, scope, actor, tenant.PropertyID); err != nil {
		return nil, err
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	payment := domain.Payment{
		ID:             uuid.NewString(),
		TenantID:       tenant.ID,
		Date:           date,
		Amount:         req.Amount,
		Mode:           req.Mode,
		Note:           req.Note,
		ApprovalStatus: domain.ApprovalPending,
		RecordedBy:     actor.ID,
		AuditFields:    domain.NewAuditFields(actor.ID, now),
	}

	stored, err := s.paymentRepo.InsertPayment(ctx, mapping.ToPaymentRecord(payment))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to record payment")
	}
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", stored.ID),
		slog.String("tenant_id", tenant.ID),
		slog.String("amount", payment.Amount.String()))
	s.Emit(actor.ID, EventPaymentRecorded, map[string]any{
		"payment_id":  stored.ID,
		"tenant_id":   tenant.ID,
		"property_id": tenant.PropertyID,
		"amount":      payment.Amount.String(),
		"mode":        string(payment.Mode),
	})

	s.RefreshAfterWrite(ctx, scope, "payment.record")
	return s.resolve(scope, mapping.ToDomainPayment(*stored)), nil
}

func (s *paymentService) DeletePayment(ctx context.Context, scope portssvc.Scope, paymentID string) (err error) {
	defer func() { s.Observe("payment.delete", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapRecordPayments)
	if err != nil {
		return err
	}
	payment, tenant, ok := scope.Current().Payment(paymentID)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
	}
	if _, err := s.RequireProperty(ctx, scope, actor, tenant.PropertyID); err != nil {
		return err
	}
	if payment.ApprovalStatus != domain.ApprovalPending {
		return apperrors.NewConflictError(fmt.Sprintf("payment is already %s and cannot be deleted", payment.ApprovalStatus))
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		return s.WrapWriteError(ctx, err, "failed to delete payment")
	}

	s.RefreshAfterWrite(ctx, scope, "payment.delete")
	return nil
}

// DecidePayment checks the transition against the dataset first, then relies
// on the store's conditional write so only one concurrent decider wins.
func (s *paymentService) DecidePayment(ctx context.Context, scope portssvc.Scope, paymentID string, decision domain.ApprovalStatus) (_ *domain.Payment, err error) {
	defer func() { s.Observe("payment.decide", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapVerifyPayments)
	if err != nil {
		return nil, err
	}
	if !decision.IsTerminal() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("decision must be %q or %q", domain.ApprovalApproved, domain.ApprovalRejected))
	}
	payment, tenant, ok := scope.Current().Payment(paymentID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
	}
	if _, err := s.RequireProperty(ctx, scope, actor, tenant.PropertyID); err != nil {
		return nil, err
	}

	now := s.now()
	if err := payment.Decide(decision, actor.ID, now); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	stored, err := s.paymentRepo.DecidePayment(ctx, paymentID, string(decision), actor.ID, now)
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to decide payment")
	}
	s.LogInfo(ctx, "Payment decided",
		slog.String("payment_id", paymentID),
		slog.String("decision", string(decision)),
		slog.String("user_id", actor.ID))

	event := EventPaymentApproved
	if decision == domain.ApprovalRejected {
		event = EventPaymentRejected
	}
	s.Emit(actor.ID, event, map[string]any{
		"payment_id":  paymentID,
		"tenant_id":   tenant.ID,
		"property_id": tenant.PropertyID,
		"amount":      payment.Amount.String(),
	})

	s.RefreshAfterWrite(ctx, scope, "payment.decide")
	decided := mapping.ToDomainPayment(*stored)
	if decided.TenantID == "" {
		decided.TenantID = tenant.ID
	}
	return s.resolve(scope, decided), nil
}

func (s *paymentService) resolve(scope portssvc.Scope, written domain.Payment) *domain.Payment {
	if p, _, ok := scope.Current().Payment(written.ID); ok {
		return &p
	}
	return &written
}
