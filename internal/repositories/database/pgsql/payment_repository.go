package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id, tenant_id, paid_on, amount, mode, note, approval_status, approved_by, approved_at, recorded_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) InsertPayment(ctx context.Context, p models.PaymentRecord) (*models.PaymentRecord, error) {
	out, err := queryOne[models.PaymentRecord](ctx, r.Pool, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+paymentColumns,
		p.ID, p.TenantID, p.PaidOn, p.Amount, p.Mode, p.Note, p.ApprovalStatus, p.ApprovedBy, p.ApprovedAt,
		p.RecordedBy, p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "insert payment")
	}
	return out, nil
}

// DecidePayment only matches a row that is still pending, so of two
// concurrent deciders exactly one gets the row back.
func (r *PgxPaymentRepository) DecidePayment(ctx context.Context, paymentID string, status string, decidedBy string, decidedAt time.Time) (*models.PaymentRecord, error) {
	out, err := queryOne[models.PaymentRecord](ctx, r.Pool, `
		UPDATE payments
		SET approval_status = $2, approved_by = $3, approved_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE id = $1 AND approval_status = 'pending'
		RETURNING `+paymentColumns,
		paymentID, status, decidedBy, decidedAt)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, r.explainMiss(ctx, paymentID, "decided")
	}
	if err != nil {
		return nil, translateError(err, "decide payment")
	}
	return out, nil
}

func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM payments WHERE id = $1 AND approval_status = 'pending'`, paymentID)
	if err != nil {
		return translateError(err, "delete payment")
	}
	if tag.RowsAffected() == 0 {
		return r.explainMiss(ctx, paymentID, "deleted")
	}
	return nil
}

// explainMiss tells a missing payment apart from one that is no longer pending.
func (r *PgxPaymentRepository) explainMiss(ctx context.Context, paymentID, action string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT approval_status FROM payments WHERE id = $1`, paymentID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	if err != nil {
		return translateError(err, "read payment status")
	}
	return apperrors.NewConflictError(fmt.Sprintf("payment is already %s and cannot be %s", status, action))
}
