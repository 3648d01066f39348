package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roomColumns = `id, room_number, property_id, floor, room_type, capacity, rent, under_maintenance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRoomRepository struct {
	BaseRepository
}

func newPgxRoomRepository(pool *pgxpool.Pool) *PgxRoomRepository {
	return &PgxRoomRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RoomRepositoryFacade = (*PgxRoomRepository)(nil)

func (r *PgxRoomRepository) ListRooms(ctx context.Context) ([]models.RoomRecord, error) {
	out, err := queryAll[models.RoomRecord](ctx, r.Pool,
		`SELECT `+roomColumns+` FROM rooms ORDER BY property_id, room_number`)
	if err != nil {
		return nil, translateError(err, "list rooms")
	}
	return out, nil
}

func (r *PgxRoomRepository) InsertRoom(ctx context.Context, room models.RoomRecord) (*models.RoomRecord, error) {
	out, err := queryOne[models.RoomRecord](ctx, r.Pool, `
		INSERT INTO rooms (`+roomColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+roomColumns,
		room.ID, room.Number, room.PropertyID, room.Floor, room.RoomType, room.Capacity, room.Rent,
		room.UnderMaintenance, room.CreatedAt, room.CreatedBy, room.LastUpdatedAt, room.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "insert room")
	}
	return out, nil
}

func (r *PgxRoomRepository) UpdateRoom(ctx context.Context, room models.RoomRecord) (*models.RoomRecord, error) {
	out, err := queryOne[models.RoomRecord](ctx, r.Pool, `
		UPDATE rooms
		SET room_number = $2, property_id = $3, floor = $4, room_type = $5, capacity = $6, rent = $7,
			under_maintenance = $8, last_updated_at = $9, last_updated_by = $10
		WHERE id = $1
		RETURNING `+roomColumns,
		room.ID, room.Number, room.PropertyID, room.Floor, room.RoomType, room.Capacity, room.Rent,
		room.UnderMaintenance, room.LastUpdatedAt, room.LastUpdatedBy)
	if err != nil {
		return nil, translateError(err, "update room")
	}
	return out, nil
}

func (r *PgxRoomRepository) DeleteRoom(ctx context.Context, roomID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return translateError(err, "delete room")
	}
	return requireAffected(tag, "room", roomID)
}
