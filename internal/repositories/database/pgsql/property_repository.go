package pgsql

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const propertyColumns = `id, name, type, location, total_rooms, total_beds, floors, manager_id, room_types,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPropertyRepository struct {
	BaseRepository
}

func newPgxPropertyRepository(pool *pgxpool.Pool) *PgxPropertyRepository {
	return &PgxPropertyRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PropertyRepositoryFacade = (*PgxPropertyRepository)(nil)

func (r *PgxPropertyRepository) ListProperties(ctx context.Context) ([]models.PropertyRecord, error) {
	out, err := queryAll[models.PropertyRecord](ctx, r.Pool,
		`SELECT `+propertyColumns+` FROM properties ORDER BY name`)
	if err != nil {
		return nil, translateError(err, "list properties")
	}
	return out, nil
}

func (r *PgxPropertyRepository) InsertProperty(ctx context.Context, p models.PropertyRecord) (*models.PropertyRecord, error) {
	out, err := queryOne[models.PropertyRecord](ctx, r.Pool, `
		INSERT INTO properties (`+propertyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+propertyColumns,
		p.ID, p.Name, p.Type, p.Location, p.TotalRooms, p.TotalBeds, p.Floors, p.ManagerID, p.RoomTypes,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "insert property")
	}
	return out, nil
}

func (r *PgxPropertyRepository) UpdateProperty(ctx context.Context, p models.PropertyRecord) (*models.PropertyRecord, error) {
	out, err := updateProperty(ctx, r.Pool, p)
	if err != nil {
		return nil, translateError(err, "update property")
	}
	return out, nil
}

// UpdatePropertyWithRoomCapacities writes the property and the capacity of
// every room of the changed types in one transaction.
func (r *PgxPropertyRepository) UpdatePropertyWithRoomCapacities(ctx context.Context, p models.PropertyRecord, capacityByRoomType map[string]int) (_ *models.PropertyRecord, err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := r.Rollback(ctx, tx); rbErr != nil {
				slog.ErrorContext(ctx, "Failed to roll back property update", slog.String("error", rbErr.Error()))
			}
		}
	}()

	out, err := updateProperty(ctx, tx, p)
	if err != nil {
		return nil, translateError(err, "update property")
	}

	batch := &pgx.Batch{}
	for roomType, capacity := range capacityByRoomType {
		batch.Queue(`
			UPDATE rooms SET capacity = $1, last_updated_at = $2, last_updated_by = $3
			WHERE property_id = $4 AND room_type = $5`,
			capacity, p.LastUpdatedAt, p.LastUpdatedBy, p.ID, roomType)
	}
	br := tx.SendBatch(ctx, batch)
	var updated int64
	for i := 0; i < batch.Len(); i++ {
		tag, execErr := br.Exec()
		if execErr != nil && err == nil {
			err = translateError(execErr, "update room capacities")
		}
		updated += tag.RowsAffected()
	}
	if closeErr := br.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close room capacity batch: %w", closeErr)
	}
	if err != nil {
		return nil, err
	}

	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "Room capacities updated",
		slog.String("property_id", p.ID),
		slog.Int64("rooms", updated))
	return out, nil
}

func (r *PgxPropertyRepository) DeleteProperty(ctx context.Context, propertyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, propertyID)
	if err != nil {
		return translateError(err, "delete property")
	}
	return requireAffected(tag, "property", propertyID)
}

func updateProperty(ctx context.Context, q querier, p models.PropertyRecord) (*models.PropertyRecord, error) {
	return queryOne[models.PropertyRecord](ctx, q, `
		UPDATE properties
		SET name = $2, type = $3, location = $4, total_rooms = $5, total_beds = $6, floors = $7,
			manager_id = $8, room_types = $9, last_updated_at = $10, last_updated_by = $11
		WHERE id = $1
		RETURNING `+propertyColumns,
		p.ID, p.Name, p.Type, p.Location, p.TotalRooms, p.TotalBeds, p.Floors,
		p.ManagerID, p.RoomTypes, p.LastUpdatedAt, p.LastUpdatedBy)
}
