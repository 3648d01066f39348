package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_Decide(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := domain.Payment{ID: "pay_1", ApprovalStatus: domain.ApprovalPending}

	require.NoError(t, p.Decide(domain.ApprovalApproved, "acct_1", now))

	assert.Equal(t, domain.ApprovalApproved, p.ApprovalStatus)
	require.NotNil(t, p.ApprovedBy)
	assert.Equal(t, "acct_1", *p.ApprovedBy)
	require.NotNil(t, p.ApprovedAt)
	assert.Equal(t, now, *p.ApprovedAt)
	assert.Equal(t, "acct_1", p.LastUpdatedBy)
}

func TestPayment_TerminalStatesAreFinal(t *testing.T) {
	targets := []domain.ApprovalStatus{domain.ApprovalPending, domain.ApprovalApproved, domain.ApprovalRejected}

	for _, from := range []domain.ApprovalStatus{domain.ApprovalApproved, domain.ApprovalRejected} {
		for _, to := range targets {
			p := domain.Payment{ID: "pay_1", ApprovalStatus: from}
			err := p.Decide(to, "acct_1", time.Now())
			require.Error(t, err, "%s -> %s must be refused", from, to)
			assert.Equal(t, from, p.ApprovalStatus)
			assert.Nil(t, p.ApprovedBy)
		}
	}
}

func TestPayment_CheckTransition(t *testing.T) {
	pending := domain.Payment{ID: "pay_1", ApprovalStatus: domain.ApprovalPending}

	assert.NoError(t, pending.CheckTransition(domain.ApprovalApproved))
	assert.NoError(t, pending.CheckTransition(domain.ApprovalRejected))
	assert.ErrorIs(t, pending.CheckTransition(domain.ApprovalPending), apperrors.ErrValidation)
	assert.ErrorIs(t, pending.CheckTransition("refunded"), apperrors.ErrValidation)

	approved := domain.Payment{ID: "pay_2", ApprovalStatus: domain.ApprovalApproved}
	assert.ErrorIs(t, approved.CheckTransition(domain.ApprovalRejected), apperrors.ErrConflict)
}

func TestPaymentMode_Valid(t *testing.T) {
	assert.True(t, domain.PaymentCash.Valid())
	assert.True(t, domain.PaymentBankTransfer.Valid())
	assert.True(t, domain.PaymentElectronicTransfer.Valid())
	assert.False(t, domain.PaymentMode("cheque").Valid())
}
