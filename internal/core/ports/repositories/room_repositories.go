package repositories

import (
	"context"

	"github.com/SscSPs/pg_console/internal/models"
)

// RoomReader defines read operations for room data
type RoomReader interface {
	// ListRooms retrieves every room row.
	ListRooms(ctx context.Context) ([]models.RoomRecord, error)
}

// RoomWriter defines write operations for room data
type RoomWriter interface {
	// InsertRoom persists a new room and returns the stored row.
	InsertRoom(ctx context.Context, room models.RoomRecord) (*models.RoomRecord, error)

	// UpdateRoom overwrites an existing room row.
	UpdateRoom(ctx context.Context, room models.RoomRecord) (*models.RoomRecord, error)

	// DeleteRoom removes a room row.
	DeleteRoom(ctx context.Context, roomID string) error
}

// RoomRepositoryFacade combines all room-related repository interfaces
type RoomRepositoryFacade interface {
	RoomReader
	RoomWriter
}
