package services

import (
	"context"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/dto"
)

// RoomWriterSvc defines write operations for rooms
type RoomWriterSvc interface {
	CreateRoom(ctx context.Context, scope Scope, req dto.RoomRequest) (*domain.Room, error)

	// UpdateRoom replaces the editable fields of a room. Capacity may not drop
	// below the current number of occupants.
	UpdateRoom(ctx context.Context, scope Scope, roomID string, req dto.RoomRequest) (*domain.Room, error)

	// SetRoomMaintenance toggles the maintenance override.
	SetRoomMaintenance(ctx context.Context, scope Scope, roomID string, underMaintenance bool) (*domain.Room, error)

	// DeleteRoom removes an unoccupied room.
	DeleteRoom(ctx context.Context, scope Scope, roomID string) error
}

// RoomSvcFacade combines all room-related service interfaces
type RoomSvcFacade interface {
	RoomWriterSvc
}
