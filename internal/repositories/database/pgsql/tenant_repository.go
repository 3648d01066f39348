package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/pg_console/internal/apperrors"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tenantColumns = `id, name, phone, email, national_id, guardian_name, guardian_phone, address,
	total_fees, deposit, start_date, end_date, room_id, property_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(pool *pgxpool.Pool) *PgxTenantRepository {
	return &PgxTenantRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// ListTenants reads tenants and payments in one batch and attaches each
// payment to its tenant. Payments of unknown tenants are dropped.
func (r *PgxTenantRepository) ListTenants(ctx context.Context) ([]models.TenantRecord, error) {
	batch := &pgx.Batch{}
	var (
		tenants  []models.TenantRecord
		payments []models.PaymentRecord
	)
	batch.Queue(`SELECT `+tenantColumns+` FROM tenants ORDER BY name`).Query(func(rows pgx.Rows) error {
		var err error
		tenants, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.TenantRecord])
		return err
	})
	batch.Queue(`SELECT `+paymentColumns+` FROM payments ORDER BY paid_on, created_at`).Query(func(rows pgx.Rows) error {
		var err error
		payments, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentRecord])
		return err
	})
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return nil, translateError(err, "list tenants")
	}

	byID := make(map[string]int, len(tenants))
	for i := range tenants {
		tenants[i].Payments = []models.PaymentRecord{}
		byID[tenants[i].ID] = i
	}
	for _, p := range payments {
		if p.TenantID == nil {
			continue
		}
		if i, ok := byID[*p.TenantID]; ok {
			tenants[i].Payments = append(tenants[i].Payments, p)
		}
	}
	return tenants, nil
}

// InsertTenant takes a bed in the tenant's room. The room row is locked for
// the check so concurrent inserts cannot overfill it.
func (r *PgxTenantRepository) InsertTenant(ctx context.Context, t models.TenantRecord) (_ *models.TenantRecord, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.rollbackOnError(ctx, tx, &err)

	if err = reserveBed(ctx, tx, t.RoomID, t.ID); err != nil {
		return nil, err
	}
	out, err := queryOne[models.TenantRecord](ctx, tx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+tenantColumns,
		t.ID, t.Name, t.Phone, t.Email, t.NationalID, t.GuardianName, t.GuardianPhone, t.Address,
		t.TotalFees, t.Deposit, t.StartDate, t.EndDate, t.RoomID, t.PropertyID,
		t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "insert tenant")
	}
	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	out.Payments = []models.PaymentRecord{}
	return out, nil
}

// UpdateTenant checks for a free bed only when the tenant changes rooms.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, t models.TenantRecord) (_ *models.TenantRecord, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.rollbackOnError(ctx, tx, &err)

	var currentRoom *string
	err = tx.QueryRow(ctx, `SELECT room_id FROM tenants WHERE id = $1 FOR UPDATE`, t.ID).Scan(&currentRoom)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tenant %s: %w", t.ID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, translateError(err, "update tenant")
	}
	if t.RoomID != nil && (currentRoom == nil || *currentRoom != *t.RoomID) {
		if err = reserveBed(ctx, tx, t.RoomID, t.ID); err != nil {
			return nil, err
		}
	}

	out, err := queryOne[models.TenantRecord](ctx, tx, `
		UPDATE tenants
		SET name = $2, phone = $3, email = $4, national_id = $5, guardian_name = $6, guardian_phone = $7,
			address = $8, total_fees = $9, deposit = $10, start_date = $11, end_date = $12,
			room_id = $13, property_id = $14, last_updated_at = $15, last_updated_by = $16
		WHERE id = $1
		RETURNING `+tenantColumns,
		t.ID, t.Name, t.Phone, t.Email, t.NationalID, t.GuardianName, t.GuardianPhone,
		t.Address, t.TotalFees, t.Deposit, t.StartDate, t.EndDate,
		t.RoomID, t.PropertyID, t.LastUpdatedAt, t.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "update tenant")
	}
	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	out.Payments = t.Payments
	return out, nil
}

// reserveBed locks the room row and fails with a conflict when the room is
// missing, under maintenance or already full. selfID is not counted.
func reserveBed(ctx context.Context, tx pgx.Tx, roomID *string, selfID string) error {
	if roomID == nil {
		return nil
	}
	var (
		capacity    int
		maintenance bool
		occupants   int
	)
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(capacity, $2), under_maintenance
		FROM rooms WHERE id = $1 FOR UPDATE`, *roomID, mapping.DefaultCapacity).Scan(&capacity, &maintenance)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewConflictError(fmt.Sprintf("room %s does not exist", *roomID))
	}
	if err != nil {
		return translateError(err, "lock room")
	}
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM tenants WHERE room_id = $1 AND id <> $2`, *roomID, selfID).Scan(&occupants); err != nil {
		return translateError(err, "count occupants")
	}
	return checkBed(*roomID, capacity, occupants, maintenance)
}

func checkBed(roomID string, capacity, occupants int, maintenance bool) error {
	if maintenance {
		return apperrors.NewConflictError(fmt.Sprintf("room %s is under maintenance", roomID))
	}
	if occupants >= capacity {
		return apperrors.NewConflictError(fmt.Sprintf("room %s is full (%d/%d)", roomID, occupants, capacity))
	}
	return nil
}

// DeleteTenant relies on ON DELETE CASCADE for the tenant's payments.
func (r *PgxTenantRepository) DeleteTenant(ctx context.Context, tenantID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return translateError(err, fmt.Sprintf("delete tenant %s", tenantID))
	}
	return requireAffected(tag, "tenant", tenantID)
}
