package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pg_console/internal/models"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// ListTenants retrieves every tenant row with its payments attached.
	ListTenants(ctx context.Context) ([]models.TenantRecord, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// InsertTenant persists a new tenant and returns the stored row.
	InsertTenant(ctx context.Context, tenant models.TenantRecord) (*models.TenantRecord, error)

	// UpdateTenant overwrites an existing tenant row. Payments are not touched.
	UpdateTenant(ctx context.Context, tenant models.TenantRecord) (*models.TenantRecord, error)

	// DeleteTenant removes a tenant row together with its payments.
	DeleteTenant(ctx context.Context, tenantID string) error
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// InsertPayment persists a new payment and returns the stored row.
	InsertPayment(ctx context.Context, payment models.PaymentRecord) (*models.PaymentRecord, error)

	// DecidePayment moves a pending payment to status. It fails with apperrors.ErrConflict
	// when the payment is no longer pending, and apperrors.ErrNotFound when it does not exist.
	DecidePayment(ctx context.Context, paymentID string, status string, decidedBy string, decidedAt time.Time) (*models.PaymentRecord, error)

	// DeletePayment removes a payment that is still pending.
	DeletePayment(ctx context.Context, paymentID string) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}

// PaymentRepositoryFacade is the payment write side. Payments are read through TenantReader.
type PaymentRepositoryFacade interface {
	PaymentWriter
}
