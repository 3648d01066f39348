package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
	"github.com/google/uuid"
)

type roomService struct {
	BaseService
	roomRepo portsrepo.RoomRepositoryFacade
}

// NewRoomService creates a room service over repo.
func NewRoomService(repo portsrepo.RoomRepositoryFacade, options ...ServiceOption) portssvc.RoomSvcFacade {
	return &roomService{
		BaseService: newBaseService(options...),
		roomRepo:    repo,
	}
}

var _ portssvc.RoomSvcFacade = (*roomService)(nil)

func (s *roomService) CreateRoom(ctx context.Context, scope portssvc.Scope, req dto.RoomRequest) (_ *domain.Room, err error) {
	defer func() { s.Observe("room.create", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapManageOccupancy)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	prop, err := s.RequireProperty(ctx, scope, actor, req.PropertyID)
	if err != nil {
		return nil, err
	}

	room := domain.Room{
		ID:          uuid.NewString(),
		PropertyID:  prop.ID,
		AuditFields: domain.NewAuditFields(actor.ID, s.now()),
	}
	if err := s.applyRoomRequest(scope, prop, &room, req); err != nil {
		return nil, err
	}

	stored, err := s.roomRepo.InsertRoom(ctx, mapping.ToRoomRecord(room))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to create room")
	}
	s.LogInfo(ctx, "Room created", slog.String("room_id", stored.ID), slog.String("property_id", prop.ID))

	s.RefreshAfterWrite(ctx, scope, "room.create")
	return s.resolve(scope, mapping.ToDomainRoom(*stored)), nil
}

func (s *roomService) UpdateRoom(ctx context.Context, scope portssvc.Scope, roomID string, req dto.RoomRequest) (_ *domain.Room, err error) {
	defer func() { s.Observe("room.update", err) }()

	actor, existing, prop, err := s.requireRoom(ctx, scope, roomID)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}
	if req.PropertyID != existing.PropertyID {
		return nil, apperrors.NewValidationFailedError("a room cannot move to another property")
	}
	if req.Capacity < len(existing.Occupants) {
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"room has %d occupants, capacity cannot drop to %d", len(existing.Occupants), req.Capacity))
	}

	updated := existing
	if err := s.applyRoomRequest(scope, prop, &updated, req); err != nil {
		return nil, err
	}
	updated.Touch(actor.ID, s.now())

	stored, err := s.roomRepo.UpdateRoom(ctx, mapping.ToRoomRecord(updated))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to update room")
	}

	s.RefreshAfterWrite(ctx, scope, "room.update")
	return s.resolve(scope, mapping.ToDomainRoom(*stored)), nil
}

func (s *roomService) SetRoomMaintenance(ctx context.Context, scope portssvc.Scope, roomID string, underMaintenance bool) (_ *domain.Room, err error) {
	defer func() { s.Observe("room.maintenance", err) }()

	actor, existing, _, err := s.requireRoom(ctx, scope, roomID)
	if err != nil {
		return nil, err
	}
	if existing.UnderMaintenance == underMaintenance {
		return &existing, nil
	}

	updated := existing
	updated.UnderMaintenance = underMaintenance
	updated.Touch(actor.ID, s.now())

	stored, err := s.roomRepo.UpdateRoom(ctx, mapping.ToRoomRecord(updated))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to update room maintenance")
	}
	s.LogInfo(ctx, "Room maintenance changed",
		slog.String("room_id", roomID),
		slog.Bool("under_maintenance", underMaintenance))

	s.RefreshAfterWrite(ctx, scope, "room.maintenance")
	return s.resolve(scope, mapping.ToDomainRoom(*stored)), nil
}

func (s *roomService) DeleteRoom(ctx context.Context, scope portssvc.Scope, roomID string) (err error) {
	defer func() { s.Observe("room.delete", err) }()

	_, existing, _, err := s.requireRoom(ctx, scope, roomID)
	if err != nil {
		return err
	}
	if n := len(existing.Occupants); n > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("room %s still has %d occupants", existing.Number, n))
	}

	if err := s.roomRepo.DeleteRoom(ctx, roomID); err != nil {
		return s.WrapWriteError(ctx, err, "failed to delete room")
	}

	s.RefreshAfterWrite(ctx, scope, "room.delete")
	return nil
}

// requireRoom checks the capability, finds the room and checks its property scope.
func (s *roomService) requireRoom(ctx context.Context, scope portssvc.Scope, roomID string) (*domain.Actor, domain.Room, domain.Property, error) {
	actor, err := s.RequireCapability(ctx, scope, domain.CapManageOccupancy)
	if err != nil {
		return nil, domain.Room{}, domain.Property{}, err
	}
	room, ok := scope.Current().Room(roomID)
	if !ok {
		return nil, domain.Room{}, domain.Property{}, apperrors.NewNotFoundError(fmt.Sprintf("room %s not found", roomID))
	}
	prop, err := s.RequireProperty(ctx, scope, actor, room.PropertyID)
	if err != nil {
		return nil, domain.Room{}, domain.Property{}, err
	}
	return actor, room, prop, nil
}

// applyRoomRequest copies req onto room after checking it against the property.
func (s *roomService) applyRoomRequest(scope portssvc.Scope, prop domain.Property, room *domain.Room, req dto.RoomRequest) error {
	number := strings.TrimSpace(req.Number)
	for _, other := range scope.Current().RoomsOf(prop.ID) {
		if other.ID != room.ID && sameName(other.Number, number) {
			return apperrors.NewDuplicateError(fmt.Sprintf("room %s already exists in %s", number, prop.Name))
		}
	}
	floor := req.Floor
	if floor == 0 {
		floor = mapping.DefaultFloor
	}
	if prop.FloorCount > 0 && floor > prop.FloorCount {
		return apperrors.NewValidationFailedError(fmt.Sprintf("floor %d exceeds the %d floors of %s", floor, prop.FloorCount, prop.Name))
	}
	if req.Rent.IsNegative() {
		return apperrors.NewValidationFailedError("rent is negative")
	}
	rent := req.Rent
	if req.RoomType != "" && len(prop.RoomTypes) > 0 {
		rt, ok := prop.RoomType(req.RoomType)
		if !ok {
			return apperrors.NewValidationFailedError(fmt.Sprintf("room type %q is not in the catalog of %s", req.RoomType, prop.Name))
		}
		if rent.IsZero() {
			rent = rt.Rent
		}
	}

	room.Number = number
	room.Floor = floor
	room.RoomType = req.RoomType
	room.Capacity = req.Capacity
	room.Rent = rent
	return nil
}

func (s *roomService) resolve(scope portssvc.Scope, written domain.Room) *domain.Room {
	if r, ok := scope.Current().Room(written.ID); ok {
		return &r
	}
	return &written
}
